package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes how to reach the cache that backs report caching and
// idempotency keys.
type Config struct {
	URL         string
	PoolSize    int
	DialTimeout time.Duration
}

// NewClient connects to Redis and pings it. A zero DialTimeout means 5s.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	// Report cache misses fall back to Postgres, so fail fast.
	opts.MaxRetries = 1

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
