package repository

import (
	"context"

	"github.com/mwarevito/financial-chat-analyzer/services"
)

// Store is a response cache backend with a health check
type Store interface {
	services.ResponseCache
	Health(ctx context.Context) error
}

// Compile-time interface verification
var _ Store = (*PostgresCache)(nil)
var _ Store = (*RedisCache)(nil)
