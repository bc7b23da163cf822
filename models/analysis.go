package models

import (
	"time"

	"github.com/google/uuid"
)

// DegradedSignal records why a signal fell back to "N/A"
type DegradedSignal struct {
	Signal    SignalType `json:"signal"`
	ErrorType string     `json:"error_type"`
	Reason    string     `json:"reason"`
}

// AnalysisResult bundles one analysis of a symbol
type AnalysisResult struct {
	ID             uuid.UUID         `json:"id"`
	Symbol         string            `json:"symbol"`
	Query          string            `json:"query,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Technical      TechnicalSignal   `json:"technical"`
	Fundamental    FundamentalSignal `json:"fundamental"`
	Sentiment      SentimentSignal   `json:"sentiment"`
	Recommendation Recommendation    `json:"recommendation"`
	NewsCount      int               `json:"news_count"`
	Summary        string            `json:"summary"`
	FollowUp       bool              `json:"follow_up"`
	Degraded       []DegradedSignal  `json:"degraded,omitempty"`
}

// NewAnalysisResult creates a result for a symbol stamped with the current time
func NewAnalysisResult(symbol, query string) *AnalysisResult {
	return &AnalysisResult{
		ID:        uuid.New(),
		Symbol:    symbol,
		Query:     query,
		Timestamp: time.Now(),
	}
}

// DataCompleteness returns the percentage of signals that were available
func (r *AnalysisResult) DataCompleteness() float64 {
	available := 0
	if r.Technical.Available() {
		available++
	}
	if r.Fundamental.Available() {
		available++
	}
	if r.Sentiment.Available() {
		available++
	}
	return float64(available) / 3 * 100
}

// ConversationContext is the previous analysis a caller passes back for
// follow-up questions. The caller owns it; nothing here stores it.
type ConversationContext struct {
	Symbol   string          `json:"symbol"`
	Analysis *AnalysisResult `json:"analysis"`
}
