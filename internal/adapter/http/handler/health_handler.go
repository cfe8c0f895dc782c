package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthCheck is one dependency probed by Readiness.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a new HealthHandler that pings Postgres and Redis.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	var checks []HealthCheck
	if pool != nil {
		checks = append(checks, HealthCheck{Name: "postgres", Check: pool.Ping})
	}
	if redisClient != nil {
		checks = append(checks, HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}
	return NewHealthHandlerWithChecks(checks...)
}

// NewHealthHandlerWithChecks creates a HealthHandler over arbitrary checks.
func NewHealthHandlerWithChecks(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]string{"status": "ready"}
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, c.Name+" unhealthy", err.Error())
			return
		}
		status[c.Name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
