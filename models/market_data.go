package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one daily close as returned by a price history provider
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds daily closes for a symbol in provider order
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Fundamentals represents company overview data as reported by the provider.
// Ratio fields keep the provider's raw strings so absent values stay absent.
type Fundamentals struct {
	Symbol        string              `json:"symbol"`
	Name          string              `json:"name,omitempty"`
	Sector        string              `json:"sector,omitempty"`
	MarketCap     decimal.NullDecimal `json:"market_cap"`
	PERatio       string              `json:"pe_ratio"`
	EPS           string              `json:"eps"`
	DividendYield string              `json:"dividend_yield"` // fraction, e.g. "0.0051"
	BookValue     string              `json:"book_value"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewsArticle represents a news article about a stock
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
