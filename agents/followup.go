package agents

import (
	"fmt"
	"strings"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

var followUpMarkers = []string{
	"why", "risk", "?", "explain", "reason", "more", "what about", "should i", "safe",
}

// IsFollowUp reports whether a query asks about a previous analysis
func IsFollowUp(query string) bool {
	q := strings.ToLower(query)
	for _, marker := range followUpMarkers {
		if strings.Contains(q, marker) {
			return true
		}
	}
	return false
}

type followUpKind int

const (
	followUpRecap followUpKind = iota
	followUpReasons
	followUpRisk
)

func classifyFollowUp(query string) followUpKind {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "why"), strings.Contains(q, "reason"), strings.Contains(q, "explain"):
		return followUpReasons
	case strings.Contains(q, "risk"), strings.Contains(q, "safe"):
		return followUpRisk
	default:
		return followUpRecap
	}
}

// AnswerFollowUp fills a template from a previous analysis. Nothing is
// fetched or recomputed.
func AnswerFollowUp(query string, prev *models.AnalysisResult) string {
	rec := prev.Recommendation
	var b strings.Builder

	switch classifyFollowUp(query) {
	case followUpReasons:
		fmt.Fprintf(&b, "I rated %s %s (score %d)", prev.Symbol, rec.Action, rec.Score)
		if len(rec.Reasons) == 0 {
			b.WriteString(". No single signal stood out strongly.\n")
			break
		}
		b.WriteString(" because:\n")
		for _, r := range rec.Reasons {
			fmt.Fprintf(&b, "  - %s\n", r)
		}

	case followUpRisk:
		fmt.Fprintf(&b, "Risk level for %s is %s.", prev.Symbol, rec.RiskLevel)
		if len(rec.RiskFactors) == 0 {
			b.WriteString(" No significant risk factors were identified.\n")
			break
		}
		b.WriteString(" Risk factors:\n")
		for _, r := range rec.RiskFactors {
			fmt.Fprintf(&b, "  - %s\n", r)
		}

	default:
		fmt.Fprintf(&b, "Based on my last analysis of %s: %s with %s confidence (risk %s).\n",
			prev.Symbol, rec.Action, rec.Confidence, rec.RiskLevel)
		if rec.Message != "" {
			fmt.Fprintf(&b, "%s\n", rec.Message)
		}
	}

	return b.String()
}
