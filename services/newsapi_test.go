package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestNewsAPI(t *testing.T, handler http.HandlerFunc) *NewsAPIService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := NewNewsAPIService("test-api-key", server.URL)
	service.breakers = NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	return service
}

func TestNewNewsAPIService(t *testing.T) {
	service := NewNewsAPIService("test-api-key", "")
	if service.apiKey != "test-api-key" {
		t.Errorf("apiKey = %v, want 'test-api-key'", service.apiKey)
	}
	if service.baseURL != "https://newsapi.org/v2" {
		t.Errorf("baseURL = %v, want 'https://newsapi.org/v2'", service.baseURL)
	}
}

func TestNewsAPI_GetNews(t *testing.T) {
	service := newTestNewsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Errorf("path = %v, want /everything", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-api-key" {
			t.Error("X-Api-Key header should be sent")
		}
		if r.URL.Query().Get("pageSize") != "5" {
			t.Errorf("pageSize = %v, want 5", r.URL.Query().Get("pageSize"))
		}
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"id": "techcrunch", "name": "TechCrunch"}, "title": "Apple Stock Rises on Strong Earnings",
				 "description": "Apple reported...", "url": "https://techcrunch.com/apple", "publishedAt": "2024-01-15T14:30:00Z"},
				{"source": {"id": null, "name": "Reuters"}, "title": "Tech Stocks Rally",
				 "description": "", "url": "https://reuters.com/tech", "publishedAt": "2024-01-15T10:00:00Z"}
			]
		}`))
	})

	articles, err := service.GetNews(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Apple Stock Rises on Strong Earnings" {
		t.Errorf("Title = %v", articles[0].Title)
	}
	if articles[1].Source != "Reuters" {
		t.Errorf("Source = %v, want Reuters", articles[1].Source)
	}
	if articles[0].PublishedAt.Hour() != 14 {
		t.Errorf("PublishedAt = %v", articles[0].PublishedAt)
	}
}

func TestNewsAPI_StatusError(t *testing.T) {
	service := newTestNewsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "code": "rateLimited", "message": "You have made too many requests recently."}`))
	})

	_, err := service.GetNews(context.Background(), "AAPL", 10)
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if providerErr.Message != "You have made too many requests recently." {
		t.Errorf("Message = %v", providerErr.Message)
	}
}

func TestNewsAPI_Unauthorized(t *testing.T) {
	service := newTestNewsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid."}`))
	})

	_, err := service.GetNews(context.Background(), "AAPL", 10)
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %v, want 401", providerErr.StatusCode)
	}
	if providerErr.Message != "Your API key is invalid." {
		t.Errorf("Message = %v", providerErr.Message)
	}
}

func TestNewsAPI_MissingKey(t *testing.T) {
	service := NewNewsAPIService("", "http://127.0.0.1:1")

	_, err := service.GetNews(context.Background(), "AAPL", 10)
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Errorf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestNewsAPI_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	service := NewNewsAPIService("test-api-key", url)
	service.breakers = NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	_, err := service.GetNews(context.Background(), "AAPL", 10)
	if ClassifyError(err) != ErrorTypeNetwork {
		t.Errorf("ClassifyError = %v, want %v (err: %v)", ClassifyError(err), ErrorTypeNetwork, err)
	}
}
