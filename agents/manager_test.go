package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

func newTestAdvisor(prices PriceHistoryService, fundamentals FundamentalsService, news NewsService) *Advisor {
	return NewAdvisor(
		NewTechnicalAnalyst(prices, NewTwoAverageRule()),
		NewFundamentalAnalyst(fundamentals),
		NewNewsAnalyst(news, 10),
		time.Second,
	)
}

func healthyServices() (*MockPriceHistoryService, *MockFundamentalsService, *MockNewsService) {
	return &MockPriceHistoryService{Series: risingSeries("AAPL", 30, 100)},
		&MockFundamentalsService{Fundamentals: &models.Fundamentals{Symbol: "AAPL", PERatio: "12", DividendYield: "0.005"}},
		&MockNewsService{Articles: []models.NewsArticle{
			{Title: "Apple shares surge on record profit"},
			{Title: "Analysts upgrade Apple"},
		}}
}

func TestAdvisor_Analyze(t *testing.T) {
	advisor := newTestAdvisor(healthyServices())

	result, err := advisor.Analyze(context.Background(), " aapl ", "How is Apple doing", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Symbol != "AAPL" {
		t.Errorf("Symbol = %v, want AAPL", result.Symbol)
	}
	if result.FollowUp {
		t.Error("FollowUp should be false")
	}
	if len(result.Degraded) != 0 {
		t.Errorf("Degraded = %+v, want none", result.Degraded)
	}
	if result.DataCompleteness() != 100 {
		t.Errorf("DataCompleteness = %v, want 100", result.DataCompleteness())
	}
	if result.NewsCount != 2 {
		t.Errorf("NewsCount = %v, want 2", result.NewsCount)
	}
	// Momentum +1 (129 vs 128), trend +1, P/E 12 +2, sentiment +1
	if result.Recommendation.Score != 5 {
		t.Errorf("Score = %v, want 5 (reasons %v)", result.Recommendation.Score, result.Recommendation.Reasons)
	}
	if result.Recommendation.Action != models.ActionStrongBuy {
		t.Errorf("Action = %v, want Strong Buy", result.Recommendation.Action)
	}
	if !strings.Contains(result.Summary, "AAPL Analysis") {
		t.Errorf("Summary not rendered:\n%s", result.Summary)
	}
}

func TestAdvisor_Analyze_EmptySymbol(t *testing.T) {
	advisor := newTestAdvisor(healthyServices())

	for _, symbol := range []string{"", "   "} {
		_, err := advisor.Analyze(context.Background(), symbol, "hello", nil)
		if !errors.Is(err, ErrSymbolRequired) {
			t.Errorf("Analyze(%q) err = %v, want ErrSymbolRequired", symbol, err)
		}
	}
}

func TestAdvisor_Analyze_DegradesFailedSignals(t *testing.T) {
	prices, _, news := healthyServices()
	fundamentals := &MockFundamentalsService{Err: services.ErrConfigurationMissing}
	news.Err = &services.ProviderError{Provider: "newsapi", Operation: "everything", StatusCode: 429, Message: "rate limited"}

	advisor := newTestAdvisor(prices, fundamentals, news)

	result, err := advisor.Analyze(context.Background(), "AAPL", "", nil)
	if err != nil {
		t.Fatalf("provider failures should not fail the analysis: %v", err)
	}

	if len(result.Degraded) != 2 {
		t.Fatalf("Degraded = %+v, want 2 entries", result.Degraded)
	}
	got := map[models.SignalType]string{}
	for _, d := range result.Degraded {
		got[d.Signal] = d.ErrorType
	}
	if got[models.SignalFundamental] != services.ErrorTypeConfigurationMissing {
		t.Errorf("fundamental error_type = %v", got[models.SignalFundamental])
	}
	if got[models.SignalSentiment] != services.ErrorTypeProvider {
		t.Errorf("sentiment error_type = %v", got[models.SignalSentiment])
	}

	if result.Fundamental.Available() || result.Sentiment.Available() {
		t.Error("failed signals should be N/A")
	}
	if !result.Technical.Available() {
		t.Error("technical signal should still be present")
	}
	// Momentum +1 and trend +1 only
	if result.Recommendation.Score != 2 {
		t.Errorf("Score = %v, want 2", result.Recommendation.Score)
	}
}

func TestAdvisor_Analyze_FetchTimeout(t *testing.T) {
	_, fundamentals, news := healthyServices()
	advisor := NewAdvisor(
		NewTechnicalAnalyst(&slowPriceHistory{delay: 2 * time.Second}, nil),
		NewFundamentalAnalyst(fundamentals),
		NewNewsAnalyst(news, 10),
		50*time.Millisecond,
	)

	start := time.Now()
	result, err := advisor.Analyze(context.Background(), "AAPL", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Analyze took %v, fetch timeout not applied", elapsed)
	}

	if len(result.Degraded) != 1 || result.Degraded[0].ErrorType != services.ErrorTypeTimeout {
		t.Errorf("Degraded = %+v, want one timeout", result.Degraded)
	}
	if result.Technical.Trend != models.TrendInsufficient {
		t.Errorf("Trend = %v, want Insufficient data", result.Technical.Trend)
	}
}

func TestAdvisor_Analyze_FollowUp(t *testing.T) {
	prices, fundamentals, news := healthyServices()
	counter := &countingSource{next: NewFundamentalAnalyst(fundamentals)}
	advisor := NewAdvisor(NewTechnicalAnalyst(prices, nil), counter, NewNewsAnalyst(news, 10), time.Second)

	first, err := advisor.Analyze(context.Background(), "AAPL", "Analyze AAPL", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter.calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", counter.calls.Load())
	}

	prev := &models.ConversationContext{Symbol: "aapl", Analysis: first}
	answer, err := advisor.Analyze(context.Background(), "AAPL", "Why?", prev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter.calls.Load() != 1 {
		t.Errorf("follow-up should not fetch, calls = %d", counter.calls.Load())
	}
	if !answer.FollowUp {
		t.Error("FollowUp should be true")
	}
	if answer.Recommendation.Action != first.Recommendation.Action {
		t.Errorf("Action = %v, want previous %v", answer.Recommendation.Action, first.Recommendation.Action)
	}
	if !strings.HasPrefix(answer.Summary, "I rated AAPL") {
		t.Errorf("Summary = %q", answer.Summary)
	}
	if answer.ID == first.ID {
		t.Error("follow-up should get its own ID")
	}
}

func TestAdvisor_Analyze_FollowUpRequiresMatchingContext(t *testing.T) {
	prices, fundamentals, news := healthyServices()
	counter := &countingSource{next: NewFundamentalAnalyst(fundamentals)}
	advisor := NewAdvisor(NewTechnicalAnalyst(prices, nil), counter, NewNewsAnalyst(news, 10), time.Second)

	prevAnalysis := sampleResult()

	tests := []struct {
		name  string
		query string
		prev  *models.ConversationContext
	}{
		{"different symbol", "why?", &models.ConversationContext{Symbol: "MSFT", Analysis: prevAnalysis}},
		{"not a follow-up", "Analyze AAPL", &models.ConversationContext{Symbol: "AAPL", Analysis: prevAnalysis}},
		{"no previous analysis", "why?", &models.ConversationContext{Symbol: "AAPL"}},
		{"no context", "why?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counter.calls.Load()
			result, err := advisor.Analyze(context.Background(), "AAPL", tt.query, tt.prev)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.FollowUp {
				t.Error("should run a fresh analysis")
			}
			if counter.calls.Load() != before+1 {
				t.Error("fresh analysis should fetch")
			}
		})
	}
}
