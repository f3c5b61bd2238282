package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/charts"
	"github.com/jengzang/evjourney-backend-go/internal/cost"
	"github.com/jengzang/evjourney-backend-go/internal/export"
	"github.com/jengzang/evjourney-backend-go/internal/filter"
	"github.com/jengzang/evjourney-backend-go/internal/ingest"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/models"
	"github.com/jengzang/evjourney-backend-go/internal/session"
	"github.com/jengzang/evjourney-backend-go/internal/spatial"
	"github.com/jengzang/evjourney-backend-go/internal/stats"
)

// Chart names served by Chart
const (
	ChartTimeSeries     = "time-series"
	ChartEfficiency     = "efficiency"
	ChartDistanceRanges = "distance-ranges"
	ChartSOC            = "soc"
	ChartHourly         = "hourly"
)

// ImportResult describes a freshly imported dataset
type ImportResult struct {
	Token     string        `json:"token"`
	Filename  string        `json:"filename"`
	Trips     int           `json:"trips"`
	Dropped   int           `json:"dropped"`
	Report    ingest.Report `json:"report"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// JourneyService handles business logic for imported journey logs
type JourneyService struct {
	sessions    *session.Store
	tokens      *session.TokenIssuer
	annotations *annotation.Store
	metrics     *metrics.Metrics
}

// NewJourneyService creates a new journey service
func NewJourneyService(sessions *session.Store, tokens *session.TokenIssuer, annotations *annotation.Store, m *metrics.Metrics) *JourneyService {
	return &JourneyService{
		sessions:    sessions,
		tokens:      tokens,
		annotations: annotations,
		metrics:     m,
	}
}

// Import decodes and normalizes an uploaded journey log into a new session
func (s *JourneyService) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	format := ingest.FormatOf(filename)

	rows, err := ingest.Decode(filename, r)
	if err != nil {
		s.countImport(format, "decode_error")
		return nil, err
	}
	if len(rows) == 0 {
		s.countImport(format, "empty")
		return nil, ErrEmptyUpload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trips, report := ingest.NormalizeWithReport(rows)
	if s.metrics != nil {
		s.metrics.RowsDropped.Add(float64(report.Dropped))
	}
	if len(trips) == 0 {
		s.countImport(format, "no_trips")
		return nil, ErrNoValidTrips
	}

	sess := s.sessions.Create(filename, trips, report)
	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.countImport(format, "ok")
	if s.metrics != nil {
		s.metrics.TripsImported.Add(float64(report.Kept))
	}
	zap.S().Infow("journey log imported",
		"session", sess.ID,
		"filename", filename,
		"rows", report.Rows,
		"kept", report.Kept,
		"dropped", report.Dropped,
	)

	return &ImportResult{
		Token:     token,
		Filename:  filename,
		Trips:     report.Kept,
		Dropped:   report.Dropped,
		Report:    report,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (s *JourneyService) countImport(format, outcome string) {
	if s.metrics == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	s.metrics.ImportsTotal.WithLabelValues(format, outcome).Inc()
}

// Resolve verifies a session token and returns the live session
func (s *JourneyService) Resolve(token string) (*session.Session, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(id)
}

// Filter applies criteria to the session's trips
func (s *JourneyService) Filter(sess *session.Session, c models.FilterCriteria) []models.Trip {
	if s.metrics != nil {
		defer s.metrics.ObserveFilter(time.Now())
	}
	var lookup filter.AnnotationLookup
	if s.annotations != nil {
		lookup = s.annotations.Lookup
	}
	return filter.Apply(sess.Trips, c, lookup)
}

// Table returns filtered trips with search and sort applied
func (s *JourneyService) Table(sess *session.Session, c models.FilterCriteria, q models.TableQuery) []models.Trip {
	trips := filter.Search(s.Filter(sess, c), q.Search)
	if q.SortBy == "" {
		return trips
	}
	return filter.Sort(trips, q.SortBy, q.Order)
}

// Statistics aggregates the filtered trips. Returns nil when nothing matches.
func (s *JourneyService) Statistics(sess *session.Session, c models.FilterCriteria) *models.Statistics {
	return stats.Aggregate(s.Filter(sess, c))
}

// Bounds describes the value ranges of the whole dataset
func (s *JourneyService) Bounds(sess *session.Session) models.FilterBounds {
	return filter.Bounds(sess.Trips)
}

// Chart projects the filtered trips into the named chart series
func (s *JourneyService) Chart(sess *session.Session, name string, c models.FilterCriteria, q models.ChartQuery) (any, error) {
	trips := s.Filter(sess, c)

	switch name {
	case ChartTimeSeries:
		window := charts.DefaultWindowDays
		if q.Window != nil {
			window = *q.Window
		}
		return charts.TimeSeries(trips, window), nil
	case ChartEfficiency:
		minEff, maxEff := float64(charts.DefaultMinEfficiency), float64(charts.DefaultMaxEfficiency)
		if q.MinEfficiency != nil {
			minEff = *q.MinEfficiency
		}
		if q.MaxEfficiency != nil {
			maxEff = *q.MaxEfficiency
		}
		return charts.EfficiencyDistribution(trips, minEff, maxEff), nil
	case ChartDistanceRanges:
		return charts.DistanceRangeBuckets(trips, models.NormalizeUnit(q.Unit)), nil
	case ChartSOC:
		count := charts.DefaultSOCCount
		if q.Count != nil {
			count = *q.Count
		}
		return charts.SOCSeries(trips, count), nil
	case ChartHourly:
		return charts.ConsumptionByHour(trips), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}

// Map projects the filtered trips onto map layers
func (s *JourneyService) Map(sess *session.Session, c models.FilterCriteria, q models.MapQuery) models.MapData {
	return spatial.BuildMap(s.Filter(sess, c), q.Unit, q.Limit)
}

// Cost estimates charging cost for the filtered trips
func (s *JourneyService) Cost(sess *session.Session, c models.FilterCriteria, params models.CostParams) models.CostEstimate {
	return cost.Estimate(s.Statistics(sess, c), params)
}

// ExportCSV writes the filtered trips in the fixed export layout
func (s *JourneyService) ExportCSV(w io.Writer, sess *session.Session, c models.FilterCriteria) error {
	return export.WriteCSV(w, s.Filter(sess, c), export.Columns)
}

// ExportPDF writes a summary report of the filtered trips
func (s *JourneyService) ExportPDF(w io.Writer, sess *session.Session, c models.FilterCriteria, now time.Time) error {
	trips := s.Filter(sess, c)
	return export.WritePDF(w, trips, stats.Aggregate(trips), now)
}

// TripRow is a trip as listed in the table, with its annotation key
type TripRow struct {
	models.Trip
	Fingerprint string                 `json:"fingerprint"`
	Annotation  *models.TripAnnotation `json:"annotation,omitempty"`
}

// Rows attaches fingerprints and any stored annotation to trips
func (s *JourneyService) Rows(trips []models.Trip) []TripRow {
	rows := make([]TripRow, len(trips))
	for i, t := range trips {
		rows[i] = TripRow{Trip: t, Fingerprint: t.Fingerprint()}
		if s.annotations == nil {
			continue
		}
		if a := s.annotations.Get(rows[i].Fingerprint); !a.IsEmpty() {
			rows[i].Annotation = &a
		}
	}
	return rows
}
