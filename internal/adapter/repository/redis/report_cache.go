package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache implements usecase.ReportCache with one Redis hash per user,
// so a single DEL drops every cached report of that user.
type ReportCache struct {
	client *redis.Client
	prefix string
}

// NewReportCache creates a new ReportCache.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{
		client: client,
		prefix: "report:",
	}
}

func (c *ReportCache) key(userID string) string {
	return c.prefix + userID
}

// Get returns the cached value for field, if present.
func (c *ReportCache) Get(ctx context.Context, userID, field string) ([]byte, bool, error) {
	val, err := c.client.HGet(ctx, c.key(userID), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under field and refreshes the hash TTL.
func (c *ReportCache) Set(ctx context.Context, userID, field string, value []byte, ttl time.Duration) error {
	key := c.key(userID)

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, value)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate removes every cached report of the user.
func (c *ReportCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
