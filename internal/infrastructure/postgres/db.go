package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "finlab"

// PoolConfig configures the connection pool. Zero values keep pgx defaults.
type PoolConfig struct {
	DatabaseURL    string
	MaxConns       int
	MinConns       int
	ConnectTimeout time.Duration
	MaxConnIdle    time.Duration
}

// NewPool opens a pool and pings it so a bad DATABASE_URL fails at startup.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func poolConfig(cfg PoolConfig) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && int32(cfg.MinConns) <= config.MaxConns {
		config.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnectTimeout > 0 {
		config.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.MaxConnIdle > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdle
	}
	if _, ok := config.ConnConfig.RuntimeParams["application_name"]; !ok {
		config.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return config, nil
}
