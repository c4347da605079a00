// Package cache provides the redis-backed key/value store used for
// optimized path results.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"errand-runner/internal/models"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by RedisStore.
const KeyPrefix = "optimized-path:"

// RedisStore is a get / set-with-TTL store over a redis client.
// Connectivity failures are returned to the caller wrapped in models.ErrInternal.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the stored value and true, or "" and false on a miss.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache.Get %s: %w: %v", key, models.ErrInternal, err)
	}
	return val, true, nil
}

// Set stores value under key for ttl.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set %s: %w: %v", key, models.ErrInternal, err)
	}
	return nil
}
