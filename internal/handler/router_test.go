package handler_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeolmok/travel-planner/backend/internal/handler"
	"github.com/yeolmok/travel-planner/backend/internal/metrics"
)

func newRouter(t *testing.T, logs *bytes.Buffer) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPromRecorder(reg)
	require.NoError(t, err)
	rec.Mutation("plan", "Create", nil)

	return handler.NewRouter(handler.NewServer(&mockPlanServicer{}, nil, nil), handler.RouterConfig{
		Logger:       slog.New(slog.NewJSONHandler(logs, nil)),
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 64,
		Metrics:      metrics.Handler(reg),
	})
}

func TestNewRouter_ServesMetrics(t *testing.T) {
	var logs bytes.Buffer
	rec := do(newRouter(t, &logs), http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "travel_mutations_total")
}

func TestNewRouter_LogsRequestsWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	rec := do(newRouter(t, &logs), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), `"path":"/healthz"`)
	assert.Contains(t, logs.String(), `"request_id"`)
}

func TestNewRouter_RejectsLargeBody(t *testing.T) {
	var logs bytes.Buffer
	body := bytes.NewBufferString(`{"title":"` + strings.Repeat("x", 100) + `"}`)

	rec := do(newRouter(t, &logs), http.MethodPost, "/plans", body)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNewRouter_StreamingBodyOverLimit(t *testing.T) {
	var logs bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	newRouter(t, &logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "body_too_large", decodeError(t, rec).Code)
}

func TestNewRouter_CORS(t *testing.T) {
	var logs bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	newRouter(t, &logs).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
