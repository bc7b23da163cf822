package services

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/observability"
)

const (
	alphaVantageProvider       = "alphavantage"
	defaultAlphaVantageBaseURL = "https://www.alphavantage.co/query"
)

// AlphaVantageService handles communication with Alpha Vantage API
type AlphaVantageService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	breakers   *CircuitBreakerRegistry
}

// NewAlphaVantageService creates a new AlphaVantageService instance.
// An empty baseURL selects the public endpoint.
func NewAlphaVantageService(apiKey, baseURL string) *AlphaVantageService {
	if baseURL == "" {
		baseURL = defaultAlphaVantageBaseURL
	}
	return &AlphaVantageService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:    baseURL,
		breakers:   GetGlobalRegistry(),
	}
}

// alphaVantageStatus holds the fields Alpha Vantage uses to report errors
// and throttling inside an HTTP 200 body
type alphaVantageStatus struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

func (s alphaVantageStatus) message() string {
	switch {
	case s.ErrorMessage != "":
		return s.ErrorMessage
	case s.Note != "":
		return s.Note
	default:
		return s.Information
	}
}

// DailySeriesResponse represents the TIME_SERIES_DAILY response
type DailySeriesResponse struct {
	alphaVantageStatus
	TimeSeries map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
}

// OverviewResponse represents the company overview response from Alpha Vantage
type OverviewResponse struct {
	alphaVantageStatus
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Sector        string `json:"Sector"`
	MarketCap     string `json:"MarketCapitalization"`
	PERatio       string `json:"PERatio"`
	BookValue     string `json:"BookValue"`
	DividendYield string `json:"DividendYield"`
	EPS           string `json:"EPS"`
}

// NewsResponse represents the news response from Alpha Vantage
type NewsResponse struct {
	alphaVantageStatus
	Items string `json:"items"`
	Feed  []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Summary       string `json:"summary"`
		Source        string `json:"source"`
		TimePublished string `json:"time_published"`
	} `json:"feed"`
}

// query runs one Alpha Vantage function through the circuit breaker and
// decodes the body into out, rejecting error payloads.
func (s *AlphaVantageService) query(ctx context.Context, operation string, params url.Values, out interface{ message() string }) error {
	if s.apiKey == "" {
		return ErrConfigurationMissing
	}
	params.Set("apikey", s.apiKey)

	_, err := executeWithBreaker(ctx, s.breakers, BreakerAlphaVantage, func() (struct{}, error) {
		body, err := getBody(ctx, s.httpClient, alphaVantageProvider, operation, s.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return struct{}{}, err
		}
		if err := decodeBody(alphaVantageProvider, operation, body, out); err != nil {
			return struct{}{}, err
		}
		if msg := out.message(); msg != "" {
			return struct{}{}, &ProviderError{Provider: alphaVantageProvider, Operation: operation, Message: msg}
		}
		return struct{}{}, nil
	})
	return err
}

// GetDailySeries returns recent daily closes for a symbol, newest first
func (s *AlphaVantageService) GetDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")

	var resp DailySeriesResponse
	if err := s.query(ctx, "daily_series", params, &resp); err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(resp.TimeSeries))
	for day, bar := range resp.TimeSeries {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			observability.Debug("skipping daily bar with bad date", "symbol", symbol, "date", day)
			continue
		}
		closePrice, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			observability.Debug("skipping daily bar with bad close", "symbol", symbol, "date", day, "close", bar.Close)
			continue
		}
		volume, _ := strconv.ParseInt(bar.Volume, 10, 64)
		points = append(points, models.PricePoint{Date: date, Close: closePrice, Volume: volume})
	}

	if len(points) == 0 {
		return nil, ErrDataUnavailable
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.After(points[j].Date) })

	return &models.PriceSeries{Symbol: symbol, Points: points}, nil
}

// GetFundamentals returns fundamental data for a symbol
func (s *AlphaVantageService) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)

	var overview OverviewResponse
	if err := s.query(ctx, "overview", params, &overview); err != nil {
		return nil, err
	}

	// Unknown symbols come back as an empty object
	if overview.Symbol == "" {
		return nil, ErrDataUnavailable
	}

	var marketCap decimal.NullDecimal
	if d, err := decimal.NewFromString(overview.MarketCap); err == nil {
		marketCap = decimal.NewNullDecimal(d)
	}

	return &models.Fundamentals{
		Symbol:        symbol,
		Name:          overview.Name,
		Sector:        overview.Sector,
		MarketCap:     marketCap,
		PERatio:       overview.PERatio,
		EPS:           overview.EPS,
		DividendYield: overview.DividendYield,
		BookValue:     overview.BookValue,
		UpdatedAt:     time.Now(),
	}, nil
}

// GetNews returns recent news for a symbol from the NEWS_SENTIMENT feed
func (s *AlphaVantageService) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", symbol)
	params.Set("limit", strconv.Itoa(limit))

	var newsResp NewsResponse
	if err := s.query(ctx, "news_sentiment", params, &newsResp); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(newsResp.Feed))
	for _, item := range newsResp.Feed {
		if len(articles) == limit {
			break
		}
		publishedAt, _ := time.Parse("20060102T150405", item.TimePublished)
		articles = append(articles, models.NewsArticle{
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}
