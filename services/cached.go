package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/observability"
)

// Cache data types
const (
	DataTypeDailySeries  = "daily_series"
	DataTypeFundamentals = "fundamentals"
	DataTypeNews         = "news"
)

// cachedFetch serves a provider payload from cache when present, otherwise
// fetches it and stores the result. Cache failures are logged and bypassed.
func cachedFetch[T any](ctx context.Context, cache ResponseCache, ttl time.Duration, symbol, dataType string, fetch func(context.Context) (T, error)) (T, error) {
	metrics := observability.GetMetrics()

	data, err := cache.Get(ctx, symbol, dataType)
	switch {
	case err != nil:
		metrics.RecordCacheError(cache.Name(), "get")
		observability.Warn("provider cache read failed", "backend", cache.Name(), "symbol", symbol, "data_type", dataType, "error", err)
	case data != nil:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.RecordCacheHit(cache.Name(), dataType)
			return cached, nil
		}
		observability.Warn("discarding undecodable cache entry", "backend", cache.Name(), "symbol", symbol, "data_type", dataType)
	}
	metrics.RecordCacheMiss(cache.Name(), dataType)

	result, err := fetch(ctx)
	if err != nil {
		return result, err
	}

	payload, err := json.Marshal(result)
	if err == nil {
		err = cache.Set(ctx, symbol, dataType, payload, ttl)
	}
	if err != nil {
		metrics.RecordCacheError(cache.Name(), "set")
		observability.Warn("provider cache write failed", "backend", cache.Name(), "symbol", symbol, "data_type", dataType, "error", err)
	}

	return result, nil
}

// CachedPriceHistory decorates a PriceHistoryService with a response cache
type CachedPriceHistory struct {
	next  PriceHistoryService
	cache ResponseCache
	ttl   time.Duration
}

// NewCachedPriceHistory wraps next with cache
func NewCachedPriceHistory(next PriceHistoryService, cache ResponseCache, ttl time.Duration) *CachedPriceHistory {
	return &CachedPriceHistory{next: next, cache: cache, ttl: ttl}
}

func (c *CachedPriceHistory) GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	return cachedFetch(ctx, c.cache, c.ttl, symbol, DataTypeDailySeries, func(ctx context.Context) (*models.PriceSeries, error) {
		return c.next.GetDailySeries(ctx, symbol)
	})
}

// CachedFundamentals decorates a FundamentalsService with a response cache
type CachedFundamentals struct {
	next  FundamentalsService
	cache ResponseCache
	ttl   time.Duration
}

// NewCachedFundamentals wraps next with cache
func NewCachedFundamentals(next FundamentalsService, cache ResponseCache, ttl time.Duration) *CachedFundamentals {
	return &CachedFundamentals{next: next, cache: cache, ttl: ttl}
}

func (c *CachedFundamentals) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	return cachedFetch(ctx, c.cache, c.ttl, symbol, DataTypeFundamentals, func(ctx context.Context) (*models.Fundamentals, error) {
		return c.next.GetFundamentals(ctx, symbol)
	})
}

// CachedNews decorates a NewsService with a response cache
type CachedNews struct {
	next  NewsService
	cache ResponseCache
	ttl   time.Duration
}

// NewCachedNews wraps next with cache
func NewCachedNews(next NewsService, cache ResponseCache, ttl time.Duration) *CachedNews {
	return &CachedNews{next: next, cache: cache, ttl: ttl}
}

func (c *CachedNews) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	// Different limits are different payloads
	dataType := DataTypeNews + ":" + strconv.Itoa(limit)
	return cachedFetch(ctx, c.cache, c.ttl, symbol, dataType, func(ctx context.Context) ([]models.NewsArticle, error) {
		return c.next.GetNews(ctx, symbol, limit)
	})
}
