// Package e2e provides end-to-end testing infrastructure for the chat analyzer.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/e2e/mocks"
	"github.com/mwarevito/financial-chat-analyzer/internal/api"
	"github.com/mwarevito/financial-chat-analyzer/internal/app"
	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

// TestHarness runs the full HTTP stack against mock market data providers.
type TestHarness struct {
	t          *testing.T
	ctx        context.Context
	cancel     context.CancelFunc
	mockServer *mocks.MockServer
	app        *app.App
	cleanup    func()
	router     http.Handler
	config     *config.Config
}

// Option adjusts the harness configuration before the stack is built.
type Option func(*config.Config)

// WithoutNewsAPI leaves NEWS_API_KEY unset so news comes from Alpha Vantage.
func WithoutNewsAPI() Option {
	return func(c *config.Config) { c.NewsAPI.APIKey = "" }
}

// WithAlpaca selects Alpaca as the daily price provider.
func WithAlpaca() Option {
	return func(c *config.Config) {
		c.Analysis.TechnicalProvider = config.ProviderAlpaca
		c.Alpaca.APIKey = "test-key"
		c.Alpaca.APISecret = "test-secret"
	}
}

// WithPostgresCache enables the Postgres response cache using E2E_DATABASE_URL.
func WithPostgresCache(dbURL string) Option {
	return func(c *config.Config) {
		c.Cache.Backend = config.CachePostgres
		c.Database.URL = dbURL
	}
}

// WithConfig applies an arbitrary configuration change.
func WithConfig(fn func(*config.Config)) Option {
	return fn
}

// NewTestHarness creates a new test harness.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	return &TestHarness{
		t:      t,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Setup starts the mock providers and builds the application against them.
func (h *TestHarness) Setup(opts ...Option) error {
	h.mockServer = mocks.NewMockServer()

	h.config = h.createTestConfig()
	for _, opt := range opts {
		opt(h.config)
	}
	if err := h.config.Validate(); err != nil {
		return fmt.Errorf("invalid test configuration: %w", err)
	}

	// Breaker state must not leak between scenarios
	services.SetGlobalRegistry(services.NewCircuitBreakerRegistry(services.DefaultCircuitBreakerConfig))

	var err error
	h.app, h.cleanup, err = app.Build(h.ctx, h.config)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	handler := api.NewHandler(h.app, h.config)
	h.router = api.NewRouter(handler, h.config)

	return nil
}

// Teardown cleans up all test resources.
func (h *TestHarness) Teardown() {
	if h.cancel != nil {
		h.cancel()
	}

	if h.cleanup != nil {
		h.cleanup()
	}

	if h.mockServer != nil {
		h.mockServer.Close()
	}
}

// Context returns the test context.
func (h *TestHarness) Context() context.Context {
	return h.ctx
}

// MockServer returns the mock server for configuring responses.
func (h *TestHarness) MockServer() *mocks.MockServer {
	return h.mockServer
}

// App returns the application instance.
func (h *TestHarness) App() *app.App {
	return h.app
}

// Router returns the HTTP router for making requests.
func (h *TestHarness) Router() http.Handler {
	return h.router
}

// Config returns the test configuration.
func (h *TestHarness) Config() *config.Config {
	return h.config
}

// DoRequest performs an HTTP request and returns the response.
func (h *TestHarness) DoRequest(method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// Analyze posts to /api/analyze and decodes a successful result.
func (h *TestHarness) Analyze(symbol, query string, prev *models.AnalysisResult) *models.AnalysisResult {
	h.t.Helper()

	body := map[string]interface{}{"symbol": symbol, "query": query}
	if prev != nil {
		body["context"] = models.ConversationContext{Symbol: prev.Symbol, Analysis: prev}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		h.t.Fatalf("failed to encode request: %v", err)
	}

	resp := h.DoRequest(http.MethodPost, "/api/analyze", string(payload))
	if resp.Code != http.StatusOK {
		h.t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		h.t.Fatalf("failed to decode analysis: %v", err)
	}
	return &result
}

func (h *TestHarness) createTestConfig() *config.Config {
	cfg := config.NewTestConfig()

	cfg.AlphaVantage.APIKey = "test-key"
	cfg.AlphaVantage.BaseURL = h.mockServer.AlphaVantageURL()
	cfg.NewsAPI.APIKey = "test-key"
	cfg.NewsAPI.BaseURL = h.mockServer.URL() + "/v2"
	cfg.Alpaca.DataURL = h.mockServer.URL()

	return cfg
}

// DatabaseURL returns E2E_DATABASE_URL, skipping the test when it is unset.
func DatabaseURL(t *testing.T) string {
	t.Helper()

	dbURL := os.Getenv("E2E_DATABASE_URL")
	if dbURL == "" {
		t.Skip("E2E_DATABASE_URL not set")
	}
	return dbURL
}
