package agents

import "github.com/mwarevito/financial-chat-analyzer/models"

// TrendRule classifies the price trend from the current price and its
// moving averages
type TrendRule interface {
	// Classify returns the trend. smaLong is absent for rules that do not use it.
	Classify(price, sma20, smaLong models.Value) models.Trend
	// LongPeriod is the window of the long average, or 0 when unused
	LongPeriod() int
	// Name returns the rule name for logging/display
	Name() string
}

// TwoAverageRule compares price with the 20-day average
type TwoAverageRule struct{}

// NewTwoAverageRule creates the price vs SMA20 rule
func NewTwoAverageRule() *TwoAverageRule {
	return &TwoAverageRule{}
}

// Classify is bullish above SMA20, bearish below it and sideways when equal.
// Either value missing yields insufficient data.
func (r *TwoAverageRule) Classify(price, sma20, _ models.Value) models.Trend {
	p, okP := price.Get()
	s, okS := sma20.Get()
	if !okP || !okS {
		return models.TrendInsufficient
	}
	switch {
	case p > s:
		return models.TrendBullish
	case p < s:
		return models.TrendBearish
	default:
		return models.TrendSideways
	}
}

// LongPeriod is 0; this rule has no long average
func (r *TwoAverageRule) LongPeriod() int {
	return 0
}

// Name returns "two"
func (r *TwoAverageRule) Name() string {
	return "two"
}

// ThreeAverageRule requires price, SMA20 and a longer average to be stacked
// in the same direction
type ThreeAverageRule struct {
	Period int
}

// NewThreeAverageRule creates the price / SMA20 / long SMA rule
func NewThreeAverageRule(longPeriod int) *ThreeAverageRule {
	if longPeriod <= shortPeriod {
		longPeriod = 50
	}
	return &ThreeAverageRule{Period: longPeriod}
}

// Classify is bullish when price > SMA20 > long SMA, bearish when strictly
// descending and sideways otherwise. Any value missing yields insufficient data.
func (r *ThreeAverageRule) Classify(price, sma20, smaLong models.Value) models.Trend {
	p, okP := price.Get()
	s, okS := sma20.Get()
	l, okL := smaLong.Get()
	if !okP || !okS || !okL {
		return models.TrendInsufficient
	}
	switch {
	case p > s && s > l:
		return models.TrendBullish
	case p < s && s < l:
		return models.TrendBearish
	default:
		return models.TrendSideways
	}
}

// LongPeriod returns the window of the long average
func (r *ThreeAverageRule) LongPeriod() int {
	return r.Period
}

// Name returns "three"
func (r *ThreeAverageRule) Name() string {
	return "three"
}

// TrendRuleFromName returns a rule by name, defaulting to the two-average rule
func TrendRuleFromName(name string, longPeriod int) TrendRule {
	switch name {
	case "three":
		return NewThreeAverageRule(longPeriod)
	default:
		return NewTwoAverageRule()
	}
}
