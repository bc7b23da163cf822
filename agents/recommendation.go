package agents

import (
	"fmt"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

const (
	maxReasons     = 4
	maxRiskFactors = 3
)

var recommendationMessages = map[models.ActionClass]map[models.RiskLevel]string{
	models.ActionClassBuy: {
		models.RiskLow:    "Signals line up well. This looks like a reasonable entry point.",
		models.RiskMedium: "The outlook is positive, but watch the risk factors before buying.",
		models.RiskHigh:   "There is upside here, but the risks are significant. Size any position carefully.",
	},
	models.ActionClassHold: {
		models.RiskLow:    "Nothing here calls for action. Holding is reasonable.",
		models.RiskMedium: "Signals are mixed. Hold and keep an eye on the risk factors.",
		models.RiskHigh:   "Signals are mixed and risks are elevated. Consider reducing exposure.",
	},
	models.ActionClassSell: {
		models.RiskLow:    "Signals lean negative. Consider trimming the position.",
		models.RiskMedium: "Several signals point down. Selling or tightening stops may be prudent.",
		models.RiskHigh:   "Signals are clearly negative and risks are high. Exiting may be prudent.",
	},
}

// Recommend scores the three signals into a recommendation. Each rule only
// runs when its inputs are present.
func Recommend(t models.TechnicalSignal, f models.FundamentalSignal, s models.SentimentSignal) models.Recommendation {
	score := 0
	var reasons, risks []string

	if change, ok := t.ChangePercent.Get(); ok {
		switch {
		case change > 3:
			score += 2
			reasons = append(reasons, fmt.Sprintf("Strong positive momentum (+%.2f%% today)", change))
		case change > 0:
			score++
			reasons = append(reasons, fmt.Sprintf("Positive price movement (+%.2f%% today)", change))
		case change < -3:
			score -= 2
			risks = append(risks, fmt.Sprintf("Sharp decline (%.2f%% today)", change))
		case change < 0:
			score--
			risks = append(risks, fmt.Sprintf("Negative price movement (%.2f%% today)", change))
		}
	}

	price, okPrice := t.Price.Get()
	sma20, okSMA := t.SMA20.Get()
	if okPrice && okSMA {
		switch {
		case price > 1.02*sma20:
			score++
			reasons = append(reasons, "Trading above its 20-day average")
		case price < 0.98*sma20:
			score--
			risks = append(risks, "Trading below its 20-day average")
		}
	}

	if pe, ok := f.PERatio.Get(); ok {
		switch {
		case pe > 0 && pe < 15:
			score += 2
			reasons = append(reasons, fmt.Sprintf("Attractive valuation (P/E %.1f)", pe))
		case pe >= 15 && pe < 25:
			score++
			reasons = append(reasons, fmt.Sprintf("Reasonable valuation (P/E %.1f)", pe))
		case pe > 40:
			score--
			risks = append(risks, fmt.Sprintf("High valuation (P/E %.1f)", pe))
		}
	}

	if yield, ok := f.DividendYield.Get(); ok && yield > 3 {
		score++
		reasons = append(reasons, fmt.Sprintf("Solid dividend yield (%.2f%%)", yield))
	}

	if sentiment, ok := s.Score.Get(); ok {
		switch {
		case sentiment > 0.5:
			score++
			reasons = append(reasons, "Positive news sentiment")
		case sentiment < -0.5:
			score--
			risks = append(risks, "Negative news sentiment")
		}
	}

	action, confidence := ScoreToAction(score)
	risk := RiskLevelFor(len(risks))

	return models.Recommendation{
		Action:      action,
		Score:       score,
		Confidence:  confidence,
		RiskLevel:   risk,
		Reasons:     truncate(reasons, maxReasons),
		RiskFactors: truncate(risks, maxRiskFactors),
		Message:     recommendationMessages[action.Class()][risk],
	}
}

// ScoreToAction maps a total score to an action and confidence.
// Thresholds are inclusive on the upper side.
func ScoreToAction(score int) (models.RecommendationAction, models.Confidence) {
	switch {
	case score >= 3:
		return models.ActionStrongBuy, models.ConfidenceHigh
	case score >= 1:
		return models.ActionBuy, models.ConfidenceMedium
	case score >= -1:
		return models.ActionHold, models.ConfidenceMedium
	case score >= -3:
		return models.ActionSell, models.ConfidenceMedium
	default:
		return models.ActionStrongSell, models.ConfidenceHigh
	}
}

// RiskLevelFor maps the number of risk factors to a risk level
func RiskLevelFor(count int) models.RiskLevel {
	switch {
	case count >= 3:
		return models.RiskHigh
	case count >= 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func truncate(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
