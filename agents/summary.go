package agents

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

// FormatSummary renders an analysis as display text. Sections always appear
// in this order: recommendation, technical, fundamentals, sentiment, news count.
func FormatSummary(r *models.AnalysisResult) string {
	var b strings.Builder
	rec := r.Recommendation

	fmt.Fprintf(&b, "%s Analysis\n\n", r.Symbol)

	fmt.Fprintf(&b, "Recommendation: %s (score %d, %s confidence)\n", rec.Action, rec.Score, rec.Confidence)
	fmt.Fprintf(&b, "Risk level: %s\n", rec.RiskLevel)
	if rec.Message != "" {
		fmt.Fprintf(&b, "%s\n", rec.Message)
	}
	writeList(&b, "Reasons", rec.Reasons)
	writeList(&b, "Risk factors", rec.RiskFactors)

	t := r.Technical
	b.WriteString("\nTechnical\n")
	fmt.Fprintf(&b, "  Price: %s (%s)\n", t.Price.Format("$%.2f"), t.ChangePercent.Format("%+.2f%%"))
	fmt.Fprintf(&b, "  Previous close: %s\n", t.PreviousClose.Format("$%.2f"))
	fmt.Fprintf(&b, "  20-day SMA: %s\n", t.SMA20.Format("$%.2f"))
	if t.LongPeriod > 0 {
		fmt.Fprintf(&b, "  %d-day SMA: %s\n", t.LongPeriod, t.SMALong.Format("$%.2f"))
	}
	fmt.Fprintf(&b, "  RSI (14): %s\n", t.RSI14.Format("%.1f"))
	fmt.Fprintf(&b, "  Trend: %s\n", t.Trend)

	f := r.Fundamental
	b.WriteString("\nFundamentals\n")
	fmt.Fprintf(&b, "  P/E ratio: %s\n", f.PERatio.Format("%.2f"))
	fmt.Fprintf(&b, "  Dividend yield: %s\n", f.DividendYield.Format("%.2f%%"))
	fmt.Fprintf(&b, "  Market cap: %s\n", formatMarketCap(f.MarketCap))
	fmt.Fprintf(&b, "  EPS: %s\n", f.EPS.Format("$%.2f"))
	fmt.Fprintf(&b, "  Book value: %s\n", f.BookValue.Format("$%.2f"))

	s := r.Sentiment
	b.WriteString("\nSentiment\n")
	fmt.Fprintf(&b, "  %s (score %s)\n", s.Label, s.Score.Format("%.2f"))
	for _, h := range s.Headlines {
		fmt.Fprintf(&b, "  - %s (%+d)\n", h.Title, h.Score)
	}

	fmt.Fprintf(&b, "\nNews: %d recent articles analyzed\n", r.NewsCount)

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

func formatMarketCap(marketCap decimal.NullDecimal) string {
	if !marketCap.Valid {
		return models.NotAvailable
	}
	d := marketCap.Decimal
	switch {
	case d.GreaterThanOrEqual(trillion):
		return "$" + d.Div(trillion).StringFixed(2) + "T"
	case d.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(2) + "M"
	default:
		return "$" + d.StringFixed(0)
	}
}
