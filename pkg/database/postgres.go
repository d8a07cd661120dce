package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Querier is implemented by both pgxpool.Pool and pgx.Tx.
// Repositories depend on Querier so the same code runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TxBeginner starts transactions. Implemented by pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPool creates a PostgreSQL connection pool with retry logic.
// Retries with exponential backoff: 1s, 2s, 4s, 8s, 16s (total ~31s before failure).
func NewPool(ctx context.Context, dsn string, maxRetries int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var pool *pgxpool.Pool
	for attempt := 0; attempt < attempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				log.Info().
					Str("host", cfg.ConnConfig.Host).
					Str("database", cfg.ConnConfig.Database).
					Msg("database connection established")
				return pool, nil
			}
			pool.Close()
			err = fmt.Errorf("ping failed: %w", pingErr)
		}

		backoff := time.Duration(1<<attempt) * time.Second
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Dur("next_retry_in", backoff).
			Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}
