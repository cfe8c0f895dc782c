package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/finlab/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/v1/transactions/day/{date}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/day/2024-06-01", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
		t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
	}

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/transactions/day/{date}", strconv.Itoa(http.StatusTeapot))
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestMetricsMiddlewareWithoutRouter(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	Metrics(m)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/health", nil))

	counter := m.HTTPRequests.WithLabelValues(http.MethodPost, "/health", "201")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "day path",
			input:    "/api/v1/transactions/day/2024-06-01",
			expected: "/api/v1/transactions/day/:date",
		},
		{
			name:     "day prefix without date",
			input:    "/api/v1/transactions/day/",
			expected: "/api/v1/transactions/day/",
		},
		{
			name:     "non-matching path",
			input:    "/api/v1/reports/summary",
			expected: "/api/v1/reports/summary",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
