package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalType identifies one of the three derived signals
type SignalType string

const (
	SignalTechnical   SignalType = "technical"
	SignalFundamental SignalType = "fundamental"
	SignalSentiment   SignalType = "sentiment"
)

// Trend is the qualitative price trend of a technical signal
type Trend string

const (
	TrendBullish      Trend = "Bullish"
	TrendBearish      Trend = "Bearish"
	TrendSideways     Trend = "Sideways"
	TrendInsufficient Trend = "Insufficient data"
)

// TechnicalSignal holds price and trend indicators derived from daily closes
type TechnicalSignal struct {
	Price         Value     `json:"price"`
	PreviousClose Value     `json:"previous_close"`
	Change        Value     `json:"change"`
	ChangePercent Value     `json:"change_percent"`
	SMA20         Value     `json:"sma20"`
	SMALong       Value     `json:"sma_long"`
	LongPeriod    int       `json:"long_period,omitempty"`
	RSI14         Value     `json:"rsi14"`
	Volume        int64     `json:"volume"`
	AsOf          time.Time `json:"as_of,omitzero"`
	Trend         Trend     `json:"trend"`
	TrendRule     string    `json:"trend_rule,omitempty"`
}

// NewAbsentTechnicalSignal returns a signal with every numeric field absent
func NewAbsentTechnicalSignal() TechnicalSignal {
	return TechnicalSignal{Trend: TrendInsufficient}
}

// Available reports whether the signal carries a price
func (s TechnicalSignal) Available() bool {
	return s.Price.Valid()
}

// FundamentalSignal passes provider ratios through, each optionally absent
type FundamentalSignal struct {
	Name          string              `json:"name,omitempty"`
	Sector        string              `json:"sector,omitempty"`
	PERatio       Value               `json:"pe_ratio"`
	DividendYield Value               `json:"dividend_yield"` // percent
	MarketCap     decimal.NullDecimal `json:"market_cap"`
	EPS           Value               `json:"eps"`
	BookValue     Value               `json:"book_value"`
}

// Available reports whether any fundamental field is present
func (s FundamentalSignal) Available() bool {
	return s.PERatio.Valid() || s.DividendYield.Valid() || s.EPS.Valid() ||
		s.BookValue.Valid() || s.MarketCap.Valid
}

// HeadlineScore is a sampled headline with its keyword score
type HeadlineScore struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source,omitempty"`
	Score  int    `json:"score"`
}

// SentimentSignal is a keyword-count sentiment over recent headlines
type SentimentSignal struct {
	Score        Value           `json:"score"`
	Label        string          `json:"label"`
	Headlines    []HeadlineScore `json:"headlines"`
	ArticleCount int             `json:"article_count"`
}

// NewAbsentSentimentSignal returns the signal used when news could not be fetched
func NewAbsentSentimentSignal() SentimentSignal {
	return SentimentSignal{Label: "Sentiment unavailable", Headlines: []HeadlineScore{}}
}

// Available reports whether the sentiment score is present
func (s SentimentSignal) Available() bool {
	return s.Score.Valid()
}
