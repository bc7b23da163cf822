package agents

import (
	"testing"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

func TestTwoAverageRule_Classify(t *testing.T) {
	rule := NewTwoAverageRule()
	tests := []struct {
		name  string
		price models.Value
		sma20 models.Value
		want  models.Trend
	}{
		{"above", models.Some(105), models.Some(100), models.TrendBullish},
		{"below", models.Some(95), models.Some(100), models.TrendBearish},
		{"equal", models.Some(100), models.Some(100), models.TrendSideways},
		{"no price", models.NA(), models.Some(100), models.TrendInsufficient},
		{"no average", models.Some(100), models.NA(), models.TrendInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Classify(tt.price, tt.sma20, models.NA()); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThreeAverageRule_Classify(t *testing.T) {
	rule := NewThreeAverageRule(50)
	tests := []struct {
		name    string
		price   float64
		sma20   float64
		smaLong models.Value
		want    models.Trend
	}{
		{"stacked up", 110, 105, models.Some(100), models.TrendBullish},
		{"stacked down", 90, 95, models.Some(100), models.TrendBearish},
		{"price above but averages crossed", 110, 100, models.Some(105), models.TrendSideways},
		{"price below but averages rising", 98, 100, models.Some(95), models.TrendSideways},
		{"no long average", 110, 105, models.NA(), models.TrendInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.Classify(models.Some(tt.price), models.Some(tt.sma20), tt.smaLong)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrendRuleFromName(t *testing.T) {
	tests := []struct {
		name       string
		longPeriod int
		wantName   string
		wantPeriod int
	}{
		{"two", 50, "two", 0},
		{"three", 50, "three", 50},
		{"three", 100, "three", 100},
		{"three", 10, "three", 50},
		{"unknown", 50, "two", 0},
		{"", 50, "two", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := TrendRuleFromName(tt.name, tt.longPeriod)
			if rule.Name() != tt.wantName {
				t.Errorf("Name() = %v, want %v", rule.Name(), tt.wantName)
			}
			if rule.LongPeriod() != tt.wantPeriod {
				t.Errorf("LongPeriod() = %v, want %v", rule.LongPeriod(), tt.wantPeriod)
			}
		})
	}
}
