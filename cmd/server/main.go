package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/finlab/internal/adapter/assistant"
	httpAdapter "github.com/iho/finlab/internal/adapter/http"
	"github.com/iho/finlab/internal/adapter/http/handler"
	"github.com/iho/finlab/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/finlab/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finlab/internal/adapter/repository/redis"
	"github.com/iho/finlab/internal/infrastructure/auth"
	"github.com/iho/finlab/internal/infrastructure/config"
	"github.com/iho/finlab/internal/infrastructure/logger"
	"github.com/iho/finlab/internal/infrastructure/metrics"
	"github.com/iho/finlab/internal/infrastructure/postgres"
	"github.com/iho/finlab/internal/infrastructure/redis"
	"github.com/iho/finlab/internal/report"
	"github.com/iho/finlab/internal/usecase"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.DurationFieldUnit = time.Millisecond
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	settings, err := reportSettings(cfg)
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.Config{
		URL:         cfg.RedisURL,
		PoolSize:    cfg.RedisPoolSize,
		DialTimeout: cfg.RedisDialTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to redis")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool, cfg.DatabaseLockTimeout)
	userRepo := postgresRepo.NewUserRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	onboardingRepo := postgresRepo.NewOnboardingRepository(pool)
	retrier := postgresRepo.NewRetrier(logger, postgresRepo.DefaultRetryPolicy)
	idGen := postgresRepo.NewULIDGenerator()
	reportCache := redisRepo.NewReportCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	clock := usecase.SystemClock{}

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen, clock, appMetrics)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, reportCache, idGen, retrier, clock, appMetrics, settings, logger)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen, clock)
	onboardingUC := usecase.NewOnboardingUseCase(onboardingRepo, clock)
	reportUC := usecase.NewReportUseCase(transactionRepo, reportCache, clock, appMetrics, settings, logger)
	assistantUC := usecase.NewAssistantUseCase(
		assistant.New(assistantConfig(cfg), logger),
		reportUC,
		onboardingRepo,
		clock,
		appMetrics,
		cfg.CurrencySymbol,
		logger,
	)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	apiLimiter := middleware.NewRateLimiter("api", cfg.RateLimitRPS, cfg.RateLimitBurst)
	assistantLimiter := middleware.NewRateLimiter("assistant", cfg.AssistantRateRPS, cfg.AssistantRateBurst)
	go apiLimiter.RunCleanup(ctx, 10*time.Minute, time.Hour)
	go assistantLimiter.RunCleanup(ctx, 10*time.Minute, time.Hour)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:             logger,
		JWTManager:         jwtManager,
		Metrics:            appMetrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        apiLimiter,
		AssistantLimiter:   assistantLimiter,
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, settings.Location),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		OnboardingHandler:  handler.NewOnboardingHandler(onboardingUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		AssistantHandler:   handler.NewAssistantHandler(assistantUC),
	})

	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func listenAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func reportSettings(cfg *config.Config) (usecase.ReportSettings, error) {
	loc, err := cfg.Location()
	if err != nil {
		return usecase.ReportSettings{}, err
	}
	return usecase.ReportSettings{
		Location: loc,
		Presentation: report.Presentation{
			CurrencySymbol: cfg.CurrencySymbol,
			DateLayout:     cfg.DateLayout,
		},
		CacheTTL: cfg.ReportCacheTTL,
	}, nil
}

func assistantConfig(cfg *config.Config) assistant.Config {
	return assistant.Config{
		BaseURL:    cfg.AssistantBaseURL,
		APIKey:     cfg.AssistantAPIKey,
		Model:      cfg.AssistantModel,
		Timeout:    cfg.AssistantTimeout,
		MaxRetries: cfg.AssistantMaxRetries,
	}
}
