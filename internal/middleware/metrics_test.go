package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/quick"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/metrics"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func setupMetricsRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

// Every request outside the infrastructure endpoints adds exactly one
// sample to its status class.
func TestProperty_HTTPRequestCounted(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)
	var status int
	router.GET("/api/lead/leads", func(c *gin.Context) {
		c.Status(status)
	})

	property := func(code uint16) bool {
		status = 200 + int(code)%400
		counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/lead/leads", classOf(status))
		before := testutil.ToFloat64(counter)

		w := serve(router, http.MethodGet, "/api/lead/leads")
		if w.Code != status {
			return false
		}
		return testutil.ToFloat64(counter) == before+1
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 100}); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

func classOf(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)
	router.GET("/api/lead/leads/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodGet, "/api/lead/leads/1")
	serve(router, http.MethodGet, "/api/lead/leads/2")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/lead/leads/:id", "2xx")))
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)

	w := serve(router, http.MethodGet, "/nowhere")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "4xx")))
}

func TestMetricsMiddleware_ExcludedEndpoints(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)
	for _, path := range []string{"/metrics", "/health", "/ready"} {
		router.GET(path, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}

	for _, path := range []string{"/metrics", "/health", "/ready"} {
		t.Run(path, func(t *testing.T) {
			w := serve(router, http.MethodGet, path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "2xx")))
		})
	}
}

func TestMetricsMiddleware_ErrorStatusCodes(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)
	router.GET("/api/lead/not-found", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.POST("/api/lead/bad-request", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	router.GET("/api/lead/server-error", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
		class      string
	}{
		{"404 Not Found", http.MethodGet, "/api/lead/not-found", http.StatusNotFound, "4xx"},
		{"400 Bad Request", http.MethodPost, "/api/lead/bad-request", http.StatusBadRequest, "4xx"},
		{"500 Server Error", http.MethodGet, "/api/lead/server-error", http.StatusInternalServerError, "5xx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(router, tc.method, tc.path)
			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(tc.method, tc.path, tc.class)))
		})
	}
}
