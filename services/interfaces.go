package services

import (
	"context"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

// PriceHistoryService provides daily closes for the technical signal
type PriceHistoryService interface {
	GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error)
}

// FundamentalsService provides company overview data for the fundamental signal
type FundamentalsService interface {
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
}

// NewsService provides recent articles for the sentiment signal
type NewsService interface {
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
}

// ResponseCache stores raw provider payloads keyed by symbol and data type.
// Get returns nil, nil on a miss.
type ResponseCache interface {
	Get(ctx context.Context, symbol, dataType string) ([]byte, error)
	Set(ctx context.Context, symbol, dataType string, data []byte, ttl time.Duration) error
	Name() string
}

// Compile-time interface verification
var _ PriceHistoryService = (*AlphaVantageService)(nil)
var _ FundamentalsService = (*AlphaVantageService)(nil)
var _ NewsService = (*AlphaVantageService)(nil)
var _ NewsService = (*NewsAPIService)(nil)
var _ PriceHistoryService = (*AlpacaService)(nil)
var _ PriceHistoryService = (*CachedPriceHistory)(nil)
var _ FundamentalsService = (*CachedFundamentals)(nil)
var _ NewsService = (*CachedNews)(nil)
