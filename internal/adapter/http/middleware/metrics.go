package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finlab/internal/infrastructure/metrics"
)

// Metrics returns a middleware recording request counts, latency and
// in-flight requests. Paths are labelled by their chi route pattern.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			// Wrap response writer to capture status code
			wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			path := routePattern(r)
			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath normalizes URL paths to avoid high cardinality when no
// route pattern is available.
// /api/v1/transactions/day/2024-06-01 -> /api/v1/transactions/day/:date
func normalizePath(path string) string {
	const dayPrefix = "/api/v1/transactions/day/"
	if rest, ok := strings.CutPrefix(path, dayPrefix); ok && rest != "" {
		return dayPrefix + ":date"
	}
	return path
}
