package models

// RecommendationAction is the discrete action of a recommendation
type RecommendationAction string

const (
	ActionStrongBuy  RecommendationAction = "Strong Buy"
	ActionBuy        RecommendationAction = "Buy"
	ActionHold       RecommendationAction = "Hold"
	ActionSell       RecommendationAction = "Sell"
	ActionStrongSell RecommendationAction = "Strong Sell"
)

// ActionClass groups actions for message lookup
type ActionClass string

const (
	ActionClassBuy  ActionClass = "buy"
	ActionClassHold ActionClass = "hold"
	ActionClassSell ActionClass = "sell"
)

// Class returns the buy/hold/sell class of the action
func (a RecommendationAction) Class() ActionClass {
	switch a {
	case ActionStrongBuy, ActionBuy:
		return ActionClassBuy
	case ActionSell, ActionStrongSell:
		return ActionClassSell
	default:
		return ActionClassHold
	}
}

// Confidence is the qualitative confidence of a recommendation
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
)

// RiskLevel is derived from the number of accumulated risk factors
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Recommendation is the scored outcome of the three signals
type Recommendation struct {
	Action      RecommendationAction `json:"action"`
	Score       int                  `json:"score"`
	Confidence  Confidence           `json:"confidence"`
	RiskLevel   RiskLevel            `json:"risk_level"`
	Reasons     []string             `json:"reasons"`
	RiskFactors []string             `json:"risk_factors"`
	Message     string               `json:"message"`
}
