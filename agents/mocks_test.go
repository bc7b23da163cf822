package agents

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

// MockPriceHistoryService implements PriceHistoryService for testing
type MockPriceHistoryService struct {
	Series *models.PriceSeries
	Err    error
}

func (m *MockPriceHistoryService) GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series, nil
}

// MockFundamentalsService implements FundamentalsService for testing
type MockFundamentalsService struct {
	Fundamentals *models.Fundamentals
	Err          error
}

func (m *MockFundamentalsService) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fundamentals, nil
}

// MockNewsService implements NewsService for testing
type MockNewsService struct {
	Articles  []models.NewsArticle
	Err       error
	LastLimit int
}

func (m *MockNewsService) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles, nil
}

// slowPriceHistory blocks until ctx is done or delay passes
type slowPriceHistory struct {
	delay time.Duration
}

func (s *slowPriceHistory) GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
		return &models.PriceSeries{Symbol: symbol}, nil
	}
}

// countingSource wraps a FundamentalSource and counts calls
type countingSource struct {
	next  FundamentalSource
	calls atomic.Int32
}

func (c *countingSource) Analyze(ctx context.Context, symbol string) (models.FundamentalSignal, error) {
	c.calls.Add(1)
	return c.next.Analyze(ctx, symbol)
}

// risingSeries returns n daily closes starting at start, one point higher each day
func risingSeries(symbol string, n int, start float64) *models.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, n)
	for i := 0; i < n; i++ {
		points[i] = models.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Close:  start + float64(i),
			Volume: int64(1000 * (i + 1)),
		}
	}
	return &models.PriceSeries{Symbol: symbol, Points: points}
}
