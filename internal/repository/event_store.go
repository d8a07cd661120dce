package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventKeyPrefix = "webhook:event:"

// eventCache is the subset of redis.Cmdable used for webhook dedupe.
type eventCache interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisEventStore remembers processed webhook event ids for a bounded time.
type RedisEventStore struct {
	cache eventCache
	ttl   time.Duration
}

// NewRedisEventStore creates an event store backed by Redis.
func NewRedisEventStore(client redis.Cmdable, ttl time.Duration) *RedisEventStore {
	return &RedisEventStore{cache: client, ttl: ttl}
}

// Processed reports whether the event key is present.
func (s *RedisEventStore) Processed(ctx context.Context, eventID string) (bool, error) {
	n, err := s.cache.Exists(ctx, eventKeyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("check event %s: %w", eventID, err)
	}
	return n > 0, nil
}

// MarkProcessed sets the event key with the store's TTL.
func (s *RedisEventStore) MarkProcessed(ctx context.Context, eventID string) error {
	if err := s.cache.Set(ctx, eventKeyPrefix+eventID, time.Now().Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return nil
}
