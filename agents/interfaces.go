package agents

import (
	"context"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

// Type aliases for service interfaces - defined in services package
type PriceHistoryService = services.PriceHistoryService
type FundamentalsService = services.FundamentalsService
type NewsService = services.NewsService

// TechnicalSource derives the technical signal for a symbol. On a provider
// failure it returns the absent signal together with the error.
type TechnicalSource interface {
	Analyze(ctx context.Context, symbol string) (models.TechnicalSignal, error)
}

// FundamentalSource derives the fundamental signal for a symbol
type FundamentalSource interface {
	Analyze(ctx context.Context, symbol string) (models.FundamentalSignal, error)
}

// SentimentSource derives the sentiment signal for a symbol
type SentimentSource interface {
	Analyze(ctx context.Context, symbol string) (models.SentimentSignal, error)
}

var _ TechnicalSource = (*TechnicalAnalyst)(nil)
var _ FundamentalSource = (*FundamentalAnalyst)(nil)
var _ SentimentSource = (*NewsAnalyst)(nil)
