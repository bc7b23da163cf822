package agents

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

func sampleResult() *models.AnalysisResult {
	result := models.NewAnalysisResult("AAPL", "How is AAPL doing")
	result.Technical = technicalWith(105, 4, 100)
	result.Technical.PreviousClose = models.Some(100.96)
	result.Technical.Trend = models.TrendBullish
	result.Fundamental = models.FundamentalSignal{
		PERatio:   models.Some(12),
		MarketCap: decimal.NewNullDecimal(decimal.NewFromInt(2500000000000)),
	}
	result.Sentiment = DeriveSentimentSignal([]models.NewsArticle{{Title: "Apple shares surge on record profit"}})
	result.NewsCount = 1
	result.Recommendation = Recommend(result.Technical, result.Fundamental, result.Sentiment)
	return result
}

func TestFormatSummary_SectionOrder(t *testing.T) {
	summary := FormatSummary(sampleResult())

	sections := []string{"Recommendation:", "\nTechnical\n", "\nFundamentals\n", "\nSentiment\n", "\nNews:"}
	last := -1
	for _, section := range sections {
		idx := strings.Index(summary, section)
		if idx < 0 {
			t.Fatalf("summary missing %q:\n%s", section, summary)
		}
		if idx < last {
			t.Errorf("section %q out of order:\n%s", section, summary)
		}
		last = idx
	}
}

func TestFormatSummary_Values(t *testing.T) {
	summary := FormatSummary(sampleResult())

	for _, want := range []string{
		"AAPL Analysis",
		"Recommendation: Strong Buy (score 6, High confidence)",
		"Risk level: Low",
		"Price: $105.00 (+4.00%)",
		"20-day SMA: $100.00",
		"Trend: Bullish",
		"P/E ratio: 12.00",
		"Dividend yield: N/A",
		"Market cap: $2.50T",
		"RSI (14): N/A",
		"- Apple shares surge on record profit (+3)",
		"News: 1 recent articles analyzed",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	if strings.Contains(summary, "50-day SMA") {
		t.Error("long SMA line should only appear with a long period")
	}
}

func TestFormatSummary_AllAbsent(t *testing.T) {
	result := models.NewAnalysisResult("ZZZZ", "")
	result.Technical = models.NewAbsentTechnicalSignal()
	result.Sentiment = models.NewAbsentSentimentSignal()
	result.Recommendation = Recommend(result.Technical, result.Fundamental, result.Sentiment)

	summary := FormatSummary(result)

	for _, want := range []string{
		"Recommendation: Hold (score 0, Medium confidence)",
		"Price: N/A (N/A)",
		"Trend: Insufficient data",
		"Market cap: N/A",
		"Sentiment unavailable (score N/A)",
		"News: 0 recent articles analyzed",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	if strings.Contains(summary, "Reasons:") {
		t.Error("empty reasons should be omitted")
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		value decimal.NullDecimal
		want  string
	}{
		{decimal.NullDecimal{}, "N/A"},
		{decimal.NewNullDecimal(decimal.NewFromInt(2500000000000)), "$2.50T"},
		{decimal.NewNullDecimal(decimal.NewFromInt(45300000000)), "$45.30B"},
		{decimal.NewNullDecimal(decimal.NewFromInt(812000000)), "$812.00M"},
		{decimal.NewNullDecimal(decimal.NewFromInt(950000)), "$950000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatMarketCap(tt.value); got != tt.want {
				t.Errorf("formatMarketCap() = %v, want %v", got, tt.want)
			}
		})
	}
}
