package agents

import (
	"context"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

// FundamentalAnalyst passes company overview ratios through as a signal
type FundamentalAnalyst struct {
	fundamentals FundamentalsService
}

// NewFundamentalAnalyst creates a new FundamentalAnalyst
func NewFundamentalAnalyst(fundamentals FundamentalsService) *FundamentalAnalyst {
	return &FundamentalAnalyst{fundamentals: fundamentals}
}

// Analyze fetches the company overview and derives the fundamental signal
func (a *FundamentalAnalyst) Analyze(ctx context.Context, symbol string) (models.FundamentalSignal, error) {
	overview, err := a.fundamentals.GetFundamentals(ctx, symbol)
	if err != nil {
		return models.FundamentalSignal{}, err
	}
	return DeriveFundamentalSignal(overview), nil
}

// DeriveFundamentalSignal converts provider strings into optional values.
// Dividend yield arrives as a fraction and is stored in percent.
func DeriveFundamentalSignal(f *models.Fundamentals) models.FundamentalSignal {
	if f == nil {
		return models.FundamentalSignal{}
	}

	signal := models.FundamentalSignal{
		Name:      f.Name,
		Sector:    f.Sector,
		PERatio:   models.ParseValue(f.PERatio),
		EPS:       models.ParseValue(f.EPS),
		BookValue: models.ParseValue(f.BookValue),
		MarketCap: f.MarketCap,
	}
	if y, ok := models.ParseValue(f.DividendYield).Get(); ok {
		signal.DividendYield = models.Some(y * 100)
	}
	return signal
}
