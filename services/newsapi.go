package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

const (
	newsAPIProvider       = "newsapi"
	defaultNewsAPIBaseURL = "https://newsapi.org/v2"
)

// NewsAPIService handles communication with NewsAPI.org
type NewsAPIService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	breakers   *CircuitBreakerRegistry
}

// NewNewsAPIService creates a new NewsAPIService instance.
// An empty baseURL selects the public endpoint.
func NewNewsAPIService(apiKey, baseURL string) *NewsAPIService {
	if baseURL == "" {
		baseURL = defaultNewsAPIBaseURL
	}
	return &NewsAPIService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:    baseURL,
		breakers:   GetGlobalRegistry(),
	}
}

// NewsAPIResponse represents the response from NewsAPI
type NewsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// GetNews returns the most recent English articles mentioning the symbol
func (s *NewsAPIService) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	if s.apiKey == "" {
		return nil, ErrConfigurationMissing
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	params := url.Values{}
	params.Set("q", symbol)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	header := http.Header{}
	header.Set("X-Api-Key", s.apiKey)

	return executeWithBreaker(ctx, s.breakers, BreakerNewsAPI, func() ([]models.NewsArticle, error) {
		body, err := getBody(ctx, s.httpClient, newsAPIProvider, "everything", s.baseURL+"/everything?"+params.Encode(), header)
		if err != nil {
			return nil, err
		}

		var newsResp NewsAPIResponse
		if err := decodeBody(newsAPIProvider, "everything", body, &newsResp); err != nil {
			return nil, err
		}
		if newsResp.Status != "ok" {
			msg := newsResp.Message
			if msg == "" {
				msg = "unexpected status " + strconv.Quote(newsResp.Status)
			}
			return nil, &ProviderError{Provider: newsAPIProvider, Operation: "everything", Message: msg}
		}

		articles := make([]models.NewsArticle, 0, len(newsResp.Articles))
		for _, item := range newsResp.Articles {
			publishedAt, _ := time.Parse(time.RFC3339, item.PublishedAt)
			articles = append(articles, models.NewsArticle{
				Title:       item.Title,
				Description: item.Description,
				URL:         item.URL,
				Source:      item.Source.Name,
				PublishedAt: publishedAt,
			})
		}
		return articles, nil
	})
}
