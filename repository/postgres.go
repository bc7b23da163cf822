package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is an interface that both pgxpool.Pool and pgx.Tx satisfy
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS provider_cache (
	symbol     TEXT        NOT NULL,
	data_type  TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (symbol, data_type)
);
CREATE INDEX IF NOT EXISTS provider_cache_expires_at_idx ON provider_cache (expires_at);
`

// PostgresCache stores provider payloads in PostgreSQL
type PostgresCache struct {
	pool *pgxpool.Pool
	db   DBTX
}

// NewPostgresCache connects to PostgreSQL and makes sure the cache table exists
func NewPostgresCache(ctx context.Context, connString string) (*PostgresCache, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	c := &PostgresCache{pool: pool, db: pool}
	if err := c.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return c, nil
}

// EnsureSchema creates the provider_cache table if it is missing
func (c *PostgresCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create provider_cache table: %w", err)
	}
	return nil
}

// Close closes the database connection pool
func (c *PostgresCache) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Health checks if the database connection is healthy
func (c *PostgresCache) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Name identifies the backend in logs and metrics
func (c *PostgresCache) Name() string {
	return "postgres"
}
