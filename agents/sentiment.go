package agents

import (
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

const maxHeadlines = 5

var positiveTerms = []string{
	"surge", "gain", "rise", "growth", "profit", "beat", "strong", "bullish",
	"upgrade", "outperform", "record", "positive", "boost", "rally", "soar",
}

var negativeTerms = []string{
	"fall", "drop", "decline", "loss", "miss", "weak", "bearish", "downgrade",
	"underperform", "concern", "risk", "negative", "cut", "plunge", "lawsuit", "crash",
}

// Sentiment labels
const (
	LabelVeryPositive = "Very positive sentiment in recent news"
	LabelPositive     = "Positive sentiment in recent news"
	LabelNeutral      = "Neutral sentiment in recent news"
	LabelNegative     = "Negative sentiment in recent news"
	LabelVeryNegative = "Very negative sentiment in recent news"
)

// ScoreHeadline counts positive minus negative term occurrences. Terms are
// matched as substrings of the lower-cased headline, so overlaps count.
func ScoreHeadline(headline string) int {
	lower := strings.ToLower(headline)
	score := 0
	for _, term := range positiveTerms {
		score += strings.Count(lower, term)
	}
	for _, term := range negativeTerms {
		score -= strings.Count(lower, term)
	}
	return score
}

// SentimentLabel maps an aggregate score to its label
func SentimentLabel(score float64) string {
	switch {
	case score > 0.5:
		return LabelVeryPositive
	case score > 0:
		return LabelPositive
	case score == 0:
		return LabelNeutral
	case score > -0.5:
		return LabelNegative
	default:
		return LabelVeryNegative
	}
}

// DeriveSentimentSignal scores article headlines. The aggregate is the mean
// headline score, 0 with no articles.
func DeriveSentimentSignal(articles []models.NewsArticle) models.SentimentSignal {
	signal := models.SentimentSignal{
		Headlines:    make([]models.HeadlineScore, 0, min(len(articles), maxHeadlines)),
		ArticleCount: len(articles),
	}

	scores := make([]float64, 0, len(articles))
	for _, article := range articles {
		score := ScoreHeadline(article.Title)
		scores = append(scores, float64(score))
		if len(signal.Headlines) < maxHeadlines {
			signal.Headlines = append(signal.Headlines, models.HeadlineScore{
				Title:  article.Title,
				URL:    article.URL,
				Source: article.Source,
				Score:  score,
			})
		}
	}

	aggregate := 0.0
	if len(scores) > 0 {
		aggregate = stat.Mean(scores, nil)
	}
	signal.Score = models.Some(aggregate)
	signal.Label = SentimentLabel(aggregate)

	return signal
}
