package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/models"
	"github.com/jengzang/evjourney-backend-go/internal/session"
)

const journeyCSV = `Start Date,End Date,Start Address,End Address,Distance in KM,Consumption in Kwh,Category,SOC Source,SOC Destination,Start Latitude,Start Longitude,End Latitude,End Longitude
"2024-03-01, 08:15","2024-03-01, 08:45",Home,Office,20,3,Business,80,74,45.42,-75.69,45.50,-73.56
"2024-03-01, 17:30","2024-03-01, 18:00",Office,Home,20,4,Business,74,68,45.50,-73.56,45.42,-75.69
"2024-03-02, 10:00","2024-03-02, 10:30",Home,Market,10,2,,68,65,0,0,0,0
"2024-03-03, 10:00","2024-03-03, 10:30",Home,Nowhere,0,1,,65,64,0,0,0,0
`

type fixture struct {
	svc         *JourneyService
	annotations *annotation.Store
	metrics     *metrics.Metrics
	sessions    *session.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := annotation.NewStore(annotation.NewMemoryKV())
	require.NoError(t, store.Load(context.Background()))
	sessions := session.NewStore(time.Hour)
	m := metrics.New()
	return fixture{
		svc:         NewJourneyService(sessions, session.NewTokenIssuer("test-secret", time.Hour), store, m),
		annotations: store,
		metrics:     m,
		sessions:    sessions,
	}
}

func importSample(t *testing.T, f fixture) *session.Session {
	t.Helper()
	res, err := f.svc.Import(context.Background(), "journeys.csv", strings.NewReader(journeyCSV))
	require.NoError(t, err)
	sess, err := f.svc.Resolve(res.Token)
	require.NoError(t, err)
	return sess
}

func TestImport(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Import(context.Background(), "journeys.csv", strings.NewReader(journeyCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Trips)
	assert.Equal(t, 1, res.Dropped)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 1, f.sessions.Len())

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ImportsTotal.WithLabelValues("csv", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RowsDropped))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.TripsImported))
}

func TestImport_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Import(ctx, "journeys.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = f.svc.Import(ctx, "journeys.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyUpload)

	_, err = f.svc.Import(ctx, "journeys.csv", strings.NewReader("Start Date,Distance in KM\n2024-01-01,0\n"))
	assert.ErrorIs(t, err, ErrNoValidTrips)
	assert.Zero(t, f.sessions.Len())
}

func TestResolve_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resolve("garbage")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	token, err := session.NewTokenIssuer("test-secret", time.Hour).Issue("missing-session")
	require.NoError(t, err)
	_, err = f.svc.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFilterStatisticsAndTable(t *testing.T) {
	f := newFixture(t)
	sess := importSample(t, f)

	business := models.FilterCriteria{Category: "Business"}
	s := f.svc.Statistics(sess, business)
	require.NotNil(t, s)
	assert.Equal(t, 2, s.TotalTrips)
	assert.InDelta(t, 17.5, s.AvgEfficiency, 1e-9)

	assert.Nil(t, f.svc.Statistics(sess, models.FilterCriteria{Category: "Nope"}))

	table := f.svc.Table(sess, models.FilterCriteria{}, models.TableQuery{
		Search: "market",
	})
	require.Len(t, table, 1)
	assert.Equal(t, models.DefaultCategory, table[0].Category)

	sorted := f.svc.Table(sess, models.FilterCriteria{}, models.TableQuery{
		SortBy: models.SortByEfficiency,
		Order:  models.SortOrderAscending,
	})
	require.Len(t, sorted, 3)
	assert.Equal(t, 15.0, sorted[0].Efficiency)
	assert.Equal(t, 20.0, sorted[2].Efficiency)

	assert.Equal(t, 1, testutil.CollectAndCount(f.metrics.FilterDuration))
}

func TestFilter_ByAnnotationTag(t *testing.T) {
	f := newFixture(t)
	sess := importSample(t, f)

	_, err := f.annotations.Set(context.Background(), sess.Trips[2].Fingerprint(),
		models.TripAnnotation{Tags: []string{"errand"}})
	require.NoError(t, err)

	trips := f.svc.Filter(sess, models.FilterCriteria{Tags: []string{"errand"}})
	require.Len(t, trips, 1)
	assert.Equal(t, "Market", trips[0].EndAddress)

	rows := f.svc.Rows(sess.Trips)
	require.Len(t, rows, 3)
	assert.Nil(t, rows[0].Annotation)
	require.NotNil(t, rows[2].Annotation)
	assert.Equal(t, []string{"errand"}, rows[2].Annotation.Tags)
	assert.Equal(t, sess.Trips[2].Fingerprint(), rows[2].Fingerprint)
}

func TestChart(t *testing.T) {
	f := newFixture(t)
	sess := importSample(t, f)
	all := models.FilterCriteria{}

	series, err := f.svc.Chart(sess, ChartTimeSeries, all, models.ChartQuery{})
	require.NoError(t, err)
	assert.Len(t, series, 2)

	one := 1
	series, err = f.svc.Chart(sess, ChartTimeSeries, all, models.ChartQuery{Window: &one})
	require.NoError(t, err)
	assert.Len(t, series, 1)

	ranges, err := f.svc.Chart(sess, ChartDistanceRanges, all, models.ChartQuery{Unit: models.UnitMiles})
	require.NoError(t, err)
	assert.Equal(t, "0-3 mi", ranges.([]models.DistanceRange)[0].Range)

	for _, name := range []string{ChartEfficiency, ChartSOC, ChartHourly} {
		_, err := f.svc.Chart(sess, name, all, models.ChartQuery{})
		assert.NoError(t, err, name)
	}

	_, err = f.svc.Chart(sess, "pie", all, models.ChartQuery{})
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestMapCostAndExport(t *testing.T) {
	f := newFixture(t)
	sess := importSample(t, f)
	all := models.FilterCriteria{}

	m := f.svc.Map(sess, all, models.MapQuery{})
	assert.Len(t, m.Routes, 2)
	assert.Len(t, m.DayLinks, 1)

	estimate := f.svc.Cost(sess, all, models.CostParams{})
	assert.Equal(t, "USD", estimate.Currency)
	assert.Greater(t, estimate.TotalCost, 0.0)

	var csv bytes.Buffer
	require.NoError(t, f.svc.ExportCSV(&csv, sess, models.FilterCriteria{Category: "Business"}))
	assert.Equal(t, 3, strings.Count(csv.String(), "\n"))

	var pdf bytes.Buffer
	require.NoError(t, f.svc.ExportPDF(&pdf, sess, all, time.Now()))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))

	assert.Equal(t, []string{"Business", models.DefaultCategory}, f.svc.Bounds(sess).Categories)
}
