// Package metrics exposes Prometheus instrumentation for the journey pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evjourney"

// Metrics groups the collectors recorded by the service layer
type Metrics struct {
	registry *prometheus.Registry

	ImportsTotal     *prometheus.CounterVec
	RowsDropped      prometheus.Counter
	TripsImported    prometheus.Counter
	FilterDuration   prometheus.Histogram
	AnnotationWrites prometheus.Counter
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Journey log imports by file format and outcome.",
		}, []string{"format", "outcome"}),
		RowsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Source rows dropped during normalization.",
		}),
		TripsImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_imported_total",
			Help:      "Trips kept after normalization.",
		}),
		FilterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_duration_seconds",
			Help:      "Time spent evaluating filter criteria over a dataset.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		AnnotationWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotation_writes_total",
			Help:      "Annotation updates persisted.",
		}),
	}
}

// RegisterSessionGauge exposes the live session count reported by fn
func (m *Metrics) RegisterSessionGauge(fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_live",
		Help:      "Imported datasets currently held in memory.",
	}, fn))
}

// ObserveFilter records the duration since start
func (m *Metrics) ObserveFilter(start time.Time) {
	m.FilterDuration.Observe(time.Since(start).Seconds())
}

// Gatherer returns the registry backing these metrics
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
