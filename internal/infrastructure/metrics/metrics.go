package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
)

const namespace = "finlab"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionAmount   *prometheus.HistogramVec
	DuplicatesRejected  prometheus.Counter

	// Report metrics
	ReportsServed *prometheus.CounterVec

	// Assistant metrics
	AssistantRequests *prometheus.CounterVec
	AssistantDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_created_total",
				Help:      "Total number of transactions created by type",
			},
			[]string{"type"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_amount",
				Help:      "Transaction amounts by type",
				Buckets:   []float64{10, 100, 500, 1000, 5000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		DuplicatesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_duplicate_rejected_total",
			Help:      "Transactions rejected by the duplicate window",
		}),

		ReportsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_served_total",
				Help:      "Reports served by kind and cache outcome",
			},
			[]string{"kind", "cache"},
		),

		AssistantRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assistant_requests_total",
				Help:      "Assistant completions by status",
			},
			[]string{"status"},
		),
		AssistantDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assistant_duration_seconds",
			Help:      "Assistant completion latency",
			Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by a rate limiter",
			},
			[]string{"limiter"},
		),
	}
}

func (m *Metrics) TransactionCreated(t domain.TransactionType, amount decimal.Decimal) {
	m.TransactionsCreated.WithLabelValues(string(t)).Inc()
	m.TransactionAmount.WithLabelValues(string(t)).Observe(amount.InexactFloat64())
}

func (m *Metrics) DuplicateRejected() {
	m.DuplicatesRejected.Inc()
}

func (m *Metrics) ReportServed(kind string, cached bool) {
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	m.ReportsServed.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) AssistantCompleted(status string, elapsed time.Duration) {
	m.AssistantRequests.WithLabelValues(status).Inc()
	m.AssistantDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AuthAttempt(status string) {
	m.AuthAttempts.WithLabelValues(status).Inc()
}

// RateLimited counts a rejection by the named limiter.
func (m *Metrics) RateLimited(limiter string) {
	m.RateLimitHits.WithLabelValues(limiter).Inc()
}
