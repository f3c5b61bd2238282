package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/config"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/middleware"
	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/internal/session"
)

const uploadCSV = `Start Date,End Date,Start Address,End Address,Distance in KM,Consumption in Kwh,Category,SOC Source,SOC Destination,Start Latitude,Start Longitude,End Latitude,End Longitude
"2024-03-01, 08:15","2024-03-01, 08:45",Home,Office,20,3,Business,80,74,45.42,-75.69,45.50,-73.56
"2024-03-01, 17:30","2024-03-01, 18:00",Office,Home,20,4,Business,74,68,45.50,-73.56,45.42,-75.69
"2024-03-02, 10:00","2024-03-02, 10:30",Home,Market,10,2,Personal,68,65,0,0,0,0
`

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		MaxUploadMB:        1,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}

	store := annotation.NewStore(annotation.NewMemoryKV())
	require.NoError(t, store.Load(context.Background()))
	m := metrics.New()
	sessions := session.NewStore(time.Hour)

	deps := Dependencies{
		Config:      cfg,
		Journeys:    service.NewJourneyService(sessions, session.NewTokenIssuer("test", time.Hour), store, m),
		Annotations: service.NewAnnotationService(store, m),
		Metrics:     m,
	}
	if rateLimit > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(rateLimit)
		t.Cleanup(deps.RateLimiter.Stop)
	}
	return SetupRouter(deps)
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journeys/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func importToken(t *testing.T, r http.Handler) string {
	t.Helper()
	rec, env := do(t, r, uploadRequest(t, "journeys.csv", uploadCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result service.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 3, result.Trips)
	return result.Token
}

func authed(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, 0)
	rec, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestImportAndQuery(t *testing.T) {
	r := newTestRouter(t, 0)
	token := importToken(t, r)

	rec, env := do(t, r, authed(http.MethodGet, "/api/v1/journeys/trips?category=Business&sortBy=efficiency&order=desc", token))
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data []struct {
			ID          int     `json:"id"`
			Efficiency  float64 `json:"efficiency"`
			Fingerprint string  `json:"fingerprint"`
		} `json:"data"`
		Total         int `json:"total"`
		DatasetTotal  int `json:"datasetTotal"`
		ActiveFilters int `json:"activeFilters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 3, page.DatasetTotal)
	assert.Equal(t, 1, page.ActiveFilters)
	assert.Equal(t, 20.0, page.Data[0].Efficiency)
	assert.Len(t, page.Data[0].Fingerprint, 32)

	rec, env = do(t, r, authed(http.MethodGet, "/api/v1/journeys/statistics?dateFrom=2024-03-02", token))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "10.00", stats["totalDistance"])
	assert.Equal(t, "20.00", stats["avgEfficiency"])

	rec, env = do(t, r, authed(http.MethodGet, "/api/v1/journeys/statistics?category=None", token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Data)

	for _, chart := range []string{"time-series", "efficiency", "distance-ranges", "soc", "hourly"} {
		rec, _ = do(t, r, authed(http.MethodGet, "/api/v1/journeys/charts/"+chart, token))
		assert.Equal(t, http.StatusOK, rec.Code, chart)
	}
	rec, _ = do(t, r, authed(http.MethodGet, "/api/v1/journeys/charts/pie", token))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, path := range []string{"/bounds", "/map?unit=mi&limit=1", "/cost?country=Canada"} {
		rec, _ = do(t, r, authed(http.MethodGet, "/api/v1/journeys"+path, token))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestTokenInQueryAndMissingToken(t *testing.T) {
	r := newTestRouter(t, 0)
	token := importToken(t, r)

	rec, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/journeys/bounds?token="+token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/journeys/bounds", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, authed(http.MethodGet, "/api/v1/journeys/bounds", "forged"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidQueries(t *testing.T) {
	r := newTestRouter(t, 0)
	token := importToken(t, r)

	for _, target := range []string{
		"/api/v1/journeys/trips?dateFrom=yesterday",
		"/api/v1/journeys/trips?distanceMin=-1",
		"/api/v1/journeys/trips?sortBy=color",
		"/api/v1/journeys/charts/distance-ranges?unit=parsec",
		"/api/v1/journeys/cost?homePercent=150",
	} {
		rec, _ := do(t, r, authed(http.MethodGet, target, token))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestImportErrors(t *testing.T) {
	r := newTestRouter(t, 0)

	rec, _ := do(t, r, uploadRequest(t, "journeys.txt", uploadCSV))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec, _ = do(t, r, uploadRequest(t, "journeys.csv", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, uploadRequest(t, "journeys.csv", "Distance in KM\n0\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, r, uploadRequest(t, "journeys.csv", strings.Repeat("x", 2<<20)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec, _ = do(t, r, httptest.NewRequest(http.MethodPost, "/api/v1/journeys/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExports(t *testing.T) {
	r := newTestRouter(t, 0)
	token := importToken(t, r)

	rec, _ := do(t, r, authed(http.MethodGet, "/api/v1/journeys/export.csv?category=Personal", token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "evjourney-export-")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "\n"))

	rec, _ = do(t, r, authed(http.MethodGet, "/api/v1/journeys/export.pdf", token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestAnnotationsFeedTagFilter(t *testing.T) {
	r := newTestRouter(t, 0)
	token := importToken(t, r)

	_, env := do(t, r, authed(http.MethodGet, "/api/v1/journeys/trips?search=market", token))
	var page struct {
		Data []struct {
			Fingerprint string `json:"fingerprint"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Data, 1)
	fp := page.Data[0].Fingerprint

	req := httptest.NewRequest(http.MethodPut, "/api/v1/annotations/"+fp,
		strings.NewReader(`{"notes":"groceries","tags":["errand"," errand ","weekly"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec, env := do(t, r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notes":"groceries","tags":["errand","weekly"]}`, string(env.Data))

	_, env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/annotations/tags", nil))
	assert.JSONEq(t, `["errand","weekly"]`, string(env.Data))

	_, env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/annotations/"+fp, nil))
	assert.JSONEq(t, `{"notes":"groceries","tags":["errand","weekly"]}`, string(env.Data))

	_, env = do(t, r, authed(http.MethodGet, "/api/v1/journeys/trips?tags=weekly,other", token))
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Data, 1)

	rec, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/annotations/not-a-fingerprint", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimitAndMetrics(t *testing.T) {
	r := newTestRouter(t, 1)

	rec, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/annotations/tags", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/annotations/tags", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "evjourney_rows_dropped_total")
}
