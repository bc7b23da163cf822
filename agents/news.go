package agents

import (
	"context"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

const defaultNewsLimit = 10

// NewsAnalyst derives keyword sentiment from recent headlines
type NewsAnalyst struct {
	news  NewsService
	limit int
}

// NewNewsAnalyst creates a new NewsAnalyst fetching up to limit articles
func NewNewsAnalyst(news NewsService, limit int) *NewsAnalyst {
	if limit <= 0 {
		limit = defaultNewsLimit
	}
	return &NewsAnalyst{news: news, limit: limit}
}

// Analyze fetches recent articles and derives the sentiment signal
func (a *NewsAnalyst) Analyze(ctx context.Context, symbol string) (models.SentimentSignal, error) {
	articles, err := a.news.GetNews(ctx, symbol, a.limit)
	if err != nil {
		return models.NewAbsentSentimentSignal(), err
	}
	return DeriveSentimentSignal(articles), nil
}
