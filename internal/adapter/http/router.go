package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/finlab/internal/adapter/http/handler"
	"github.com/iho/finlab/internal/adapter/http/middleware"
	"github.com/iho/finlab/internal/infrastructure/auth"
	"github.com/iho/finlab/internal/infrastructure/metrics"
	"github.com/iho/finlab/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger         zerolog.Logger
	JWTManager     *auth.JWTManager
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// RateLimiter guards the whole API; AssistantLimiter only the chat endpoint.
	RateLimiter      *middleware.RateLimiter
	AssistantLimiter *middleware.RateLimiter

	HealthHandler      *handler.HealthHandler
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	CategoryHandler    *handler.CategoryHandler
	OnboardingHandler  *handler.OnboardingHandler
	ReportHandler      *handler.ReportHandler
	AssistantHandler   *handler.AssistantHandler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRecovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
		for _, rl := range []*middleware.RateLimiter{cfg.RateLimiter, cfg.AssistantLimiter} {
			if rl != nil && rl.OnLimited == nil {
				rl.OnLimited = cfg.Metrics.RateLimited
			}
		}
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Get("/me", cfg.AuthHandler.Me)

			// Idempotency keys are scoped per user, so this runs after auth.
			var idempotent chi.Middlewares
			if cfg.IdempotencyStore != nil {
				idempotent = append(idempotent, middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
			}

			r.Route("/transactions", func(r chi.Router) {
				r.With(idempotent...).Post("/", cfg.TransactionHandler.Create)
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/day/{date}", cfg.TransactionHandler.ListForDay)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", cfg.CategoryHandler.List)
				r.Post("/", cfg.CategoryHandler.Create)
			})

			r.Route("/onboarding", func(r chi.Router) {
				r.Get("/", cfg.OnboardingHandler.Get)
				r.Put("/", cfg.OnboardingHandler.Save)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", cfg.ReportHandler.Summary)
				r.Get("/line", cfg.ReportHandler.Line)
				r.Get("/pie", cfg.ReportHandler.Pie)
				r.Get("/context", cfg.ReportHandler.Context)
			})

			r.Route("/assistant", func(r chi.Router) {
				if cfg.AssistantLimiter != nil {
					r.Use(cfg.AssistantLimiter.Limit)
				}
				r.Post("/chat", cfg.AssistantHandler.Chat)
			})
		})
	})

	return r
}
