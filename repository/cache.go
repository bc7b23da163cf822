package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mwarevito/financial-chat-analyzer/observability"
)

const cacheTable = "provider_cache"

// Get returns the cached payload for a symbol and data type, or nil if
// there is no live entry
func (c *PostgresCache) Get(ctx context.Context, symbol, dataType string) ([]byte, error) {
	timer := observability.GetMetrics().NewTimer()
	defer timer.ObserveDB("get", cacheTable)

	var data []byte

	// Let the database handle expiry check to avoid timezone issues
	err := c.db.QueryRow(ctx, `
		SELECT data FROM provider_cache
		WHERE symbol = $1 AND data_type = $2 AND expires_at > NOW()
	`, symbol, dataType).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		observability.GetMetrics().RecordDBError("get", cacheTable)
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	return data, nil
}

// Set stores a payload with a TTL, replacing any existing entry
func (c *PostgresCache) Set(ctx context.Context, symbol, dataType string, data []byte, ttl time.Duration) error {
	timer := observability.GetMetrics().NewTimer()
	defer timer.ObserveDB("set", cacheTable)

	_, err := c.db.Exec(ctx, `
		INSERT INTO provider_cache (symbol, data_type, data, expires_at)
		VALUES ($1, $2, $3, NOW() + make_interval(secs => $4))
		ON CONFLICT (symbol, data_type)
		DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, created_at = NOW()
	`, symbol, dataType, data, ttl.Seconds())

	if err != nil {
		observability.GetMetrics().RecordDBError("set", cacheTable)
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// CleanExpired removes all expired cache entries
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	result, err := c.db.Exec(ctx, `DELETE FROM provider_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to clean expired cache: %w", err)
	}
	return result.RowsAffected(), nil
}
