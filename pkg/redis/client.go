package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Str("addr", addr).Int("db", db).Msg("redis client connected")
	return rdb, nil
}

// Pinger adapts a Redis client to the health check's Ping(ctx) error shape.
type Pinger struct {
	client redis.UniversalClient
}

// NewPinger wraps client for health checks.
func NewPinger(client redis.UniversalClient) *Pinger {
	return &Pinger{client: client}
}

// Ping reports whether Redis answers.
func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
