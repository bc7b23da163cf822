package services

import (
	"context"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/observability"
)

const alpacaProvider = "alpaca"

// alpacaDataClient is the subset of the marketdata client used here
type alpacaDataClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaService provides daily price history from Alpaca market data
type AlpacaService struct {
	dataClient   alpacaDataClient
	hasKeys      bool
	lookbackDays int
	breakers     *CircuitBreakerRegistry
}

// NewAlpacaService creates a new AlpacaService instance
func NewAlpacaService(apiKey, apiSecret, dataURL string, lookbackDays int) *AlpacaService {
	if lookbackDays <= 0 {
		lookbackDays = 100
	}

	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   dataURL,
	})

	return &AlpacaService{
		dataClient:   dataClient,
		hasKeys:      apiKey != "" && apiSecret != "",
		lookbackDays: lookbackDays,
		breakers:     GetGlobalRegistry(),
	}
}

type barsResult struct {
	bars []marketdata.Bar
	err  error
}

// GetDailySeries returns daily closes over the lookback window, newest first
func (s *AlpacaService) GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	if !s.hasKeys {
		return nil, ErrConfigurationMissing
	}

	return executeWithBreaker(ctx, s.breakers, BreakerAlpaca, func() (*models.PriceSeries, error) {
		metrics := observability.GetMetrics()
		metrics.RecordExternalAPIRequest(alpacaProvider, "daily_bars")
		timer := metrics.NewTimer()
		defer timer.ObserveExternalAPI(alpacaProvider, "daily_bars")

		end := time.Now()
		start := end.AddDate(0, 0, -s.lookbackDays)

		// The marketdata client takes no context, so the call is raced against ctx
		ch := make(chan barsResult, 1)
		go func() {
			bars, err := s.dataClient.GetBars(symbol, marketdata.GetBarsRequest{
				TimeFrame: marketdata.OneDay,
				Start:     start,
				End:       end,
			})
			ch <- barsResult{bars: bars, err: err}
		}()

		var res barsResult
		select {
		case <-ctx.Done():
			metrics.RecordExternalAPIError(alpacaProvider, "daily_bars", ErrorTypeTimeout)
			return nil, ctx.Err()
		case res = <-ch:
		}

		if res.err != nil {
			err := &ProviderError{Provider: alpacaProvider, Operation: "daily_bars", Message: res.err.Error()}
			metrics.RecordExternalAPIError(alpacaProvider, "daily_bars", ErrorTypeProvider)
			return nil, err
		}
		if len(res.bars) == 0 {
			return nil, ErrDataUnavailable
		}

		points := make([]models.PricePoint, 0, len(res.bars))
		for _, bar := range res.bars {
			points = append(points, models.PricePoint{
				Date:   bar.Timestamp,
				Close:  bar.Close,
				Volume: int64(bar.Volume),
			})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date.After(points[j].Date) })

		return &models.PriceSeries{Symbol: symbol, Points: points}, nil
	})
}
