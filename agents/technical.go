package agents

import (
	"context"
	"fmt"
	"sort"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

// TechnicalAnalyst derives price and trend indicators from daily closes
type TechnicalAnalyst struct {
	prices PriceHistoryService
	rule   TrendRule
}

// NewTechnicalAnalyst creates a new TechnicalAnalyst. A nil rule selects
// the two-average rule.
func NewTechnicalAnalyst(prices PriceHistoryService, rule TrendRule) *TechnicalAnalyst {
	if rule == nil {
		rule = NewTwoAverageRule()
	}
	return &TechnicalAnalyst{prices: prices, rule: rule}
}

// Analyze fetches the daily series and derives the technical signal
func (a *TechnicalAnalyst) Analyze(ctx context.Context, symbol string) (models.TechnicalSignal, error) {
	series, err := a.prices.GetDailySeries(ctx, symbol)
	if err != nil {
		return a.absent(), err
	}
	if len(series.Points) < 2 {
		return a.absent(), fmt.Errorf("%d daily closes: %w", len(series.Points), services.ErrDataUnavailable)
	}
	return DeriveTechnicalSignal(series.Points, a.rule), nil
}

// Rule returns the trend rule in use
func (a *TechnicalAnalyst) Rule() TrendRule {
	return a.rule
}

func (a *TechnicalAnalyst) absent() models.TechnicalSignal {
	signal := models.NewAbsentTechnicalSignal()
	signal.TrendRule = a.rule.Name()
	return signal
}

// DeriveTechnicalSignal computes the technical signal from daily closes in
// any order. Fewer than two points yield the absent signal.
func DeriveTechnicalSignal(points []models.PricePoint, rule TrendRule) models.TechnicalSignal {
	if rule == nil {
		rule = NewTwoAverageRule()
	}

	signal := models.NewAbsentTechnicalSignal()
	signal.TrendRule = rule.Name()
	if len(points) < 2 {
		return signal
	}

	sorted := make([]models.PricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	closes := make([]float64, len(sorted))
	for i, p := range sorted {
		closes[i] = p.Close
	}

	latest, previous := closes[0], closes[1]
	change := latest - previous

	signal.Price = models.Some(latest)
	signal.PreviousClose = models.Some(previous)
	signal.Change = models.Some(change)
	if previous != 0 {
		signal.ChangePercent = models.Some(100 * change / previous)
	}
	signal.Volume = sorted[0].Volume
	signal.AsOf = sorted[0].Date

	signal.SMA20 = movingAverage(closes, shortPeriod)
	if period := rule.LongPeriod(); period > 0 {
		signal.LongPeriod = period
		signal.SMALong = fullMovingAverage(closes, period)
	}
	signal.RSI14 = relativeStrength(closes, rsiPeriod)
	signal.Trend = rule.Classify(signal.Price, signal.SMA20, signal.SMALong)

	return signal
}
