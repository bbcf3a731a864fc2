package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shaibs3/bakery-api/internal/telemetry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type stubHandler struct{}

func (stubHandler) RegisterRoutes(r *mux.Router, logger *zap.Logger) {
	r.HandleFunc("/ping", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/boom", func(w http.ResponseWriter, req *http.Request) {
		panic("oven on fire")
	}).Methods(http.MethodGet)
}

func newTestRouter(t *testing.T, limiter *rate.Limiter) *Router {
	t.Helper()
	tel, err := telemetry.NewTelemetry(zap.NewNop())
	require.NoError(t, err)
	return NewRouter(limiter, tel, zap.NewNop(), []Handler{stubHandler{}})
}

func TestRouter_ServesRegisteredRoutes(t *testing.T) {
	r := newTestRouter(t, rate.NewLimiter(rate.Inf, 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(RequestIDHeader), "a request id should be minted")
}

func TestRouter_PreservesIncomingRequestID(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(t, rate.NewLimiter(rate.Limit(0), 1))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "resource not found", body["error"])
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "http_requests_total")
	require.Contains(t, w.Body.String(), `route="/ping"`)
}

func TestRouter_CreateServer(t *testing.T) {
	r := newTestRouter(t, nil)
	srv := r.CreateServer(":0")
	require.Equal(t, ":0", srv.Addr)
	require.Same(t, r, srv.Handler)
}
