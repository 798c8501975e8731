package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/metrics"
	"github.com/abhiraj070/RuleMind/middleware"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_LocalLimiter(t *testing.T) {
	limiter := middleware.NewLocalLimiter(2, time.Minute)
	r := newRouter(middleware.RateLimiter(limiter, 2, time.Minute))

	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)

	w := get(r, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestLocalLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := middleware.NewLocalLimiter(1, time.Minute)

	ok, err := limiter.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = limiter.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestRateLimiter_LimiterErrorFailsClosed(t *testing.T) {
	r := newRouter(middleware.RateLimiter(failingLimiter{}, 10, time.Minute))

	w := get(r, "/ping")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLogger_RecordsRequests(t *testing.T) {
	collector := metrics.NewMetricsCollector()
	r := newRouter(middleware.Logger(collector))

	get(r, "/ping")
	get(r, "/missing")

	expected := `
# HELP rulemind_http_requests_total HTTP requests by route and status
# TYPE rulemind_http_requests_total counter
rulemind_http_requests_total{method="GET",route="/ping",status="200"} 1
rulemind_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "rulemind_http_requests_total"))
}
