package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotClaimed is returned by Complete when the key expired or was
// released before the response could be recorded.
var ErrKeyNotClaimed = errors.New("idempotency key is not claimed")

// IdempotencyStore keeps Idempotency-Key outcomes in Redis. A claimed key
// holds an empty string until its response is recorded.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "finlab:idempotency:",
	}
}

func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	fullKey := s.prefix + key

	claimed, err := s.client.SetNX(ctx, fullKey, "", ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("claim idempotency key: %w", err)
	}
	if claimed {
		return nil, true, nil
	}

	stored, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; try once more.
		claimed, err = s.client.SetNX(ctx, fullKey, "", ttl).Result()
		if err != nil {
			return nil, false, fmt.Errorf("claim idempotency key: %w", err)
		}
		return nil, claimed, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read idempotency key: %w", err)
	}
	return stored, false, nil
}

// Complete overwrites a claimed key with response. It never creates a key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	ok, err := s.client.SetXX(ctx, s.prefix+key, response, ttl).Result()
	if err != nil {
		return fmt.Errorf("record idempotent response: %w", err)
	}
	if !ok {
		return ErrKeyNotClaimed
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
