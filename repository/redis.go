package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chat-analyzer:provider"

// RedisConfig holds connection settings for RedisCache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores provider payloads in Redis with native key expiry
type RedisCache struct {
	cli *redis.Client
}

// NewRedisCache creates a Redis-backed cache. The connection is checked
// lazily; use Health to verify it.
func NewRedisCache(cfg RedisConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &RedisCache{cli: rdb}
}

func redisKey(symbol, dataType string) string {
	return redisKeyPrefix + ":" + symbol + ":" + dataType
}

// Get returns the cached payload, or nil on a miss
func (r *RedisCache) Get(ctx context.Context, symbol, dataType string) ([]byte, error) {
	b, err := r.cli.Get(ctx, redisKey(symbol, dataType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	return b, nil
}

// Set stores a payload with a TTL
func (r *RedisCache) Set(ctx context.Context, symbol, dataType string, data []byte, ttl time.Duration) error {
	if err := r.cli.Set(ctx, redisKey(symbol, dataType), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Health pings the Redis server
func (r *RedisCache) Health(ctx context.Context) error {
	return r.cli.Ping(ctx).Err()
}

// Close closes the client
func (r *RedisCache) Close() error {
	return r.cli.Close()
}

// Name identifies the backend in logs and metrics
func (r *RedisCache) Name() string {
	return "redis"
}
