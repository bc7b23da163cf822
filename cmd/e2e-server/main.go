// Package main provides a standalone HTTP server for E2E testing.
// It runs the same routes and handlers as cmd/server, with every market
// data provider pointed at an in-process mock, so browser and API tests
// get deterministic analyses without API keys.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/e2e/mocks"
	"github.com/mwarevito/financial-chat-analyzer/internal/api"
	"github.com/mwarevito/financial-chat-analyzer/internal/app"
	"github.com/mwarevito/financial-chat-analyzer/observability"
)

func main() {
	// Initialize logger in development mode for tests
	observability.InitLogger(false, observability.ParseLevel(os.Getenv("LOG_LEVEL")))
	observability.InitMetrics()

	port := os.Getenv("E2E_SERVER_PORT")
	if port == "" {
		port = "9090"
	}

	providers := mocks.NewMockServer()
	defer providers.Close()
	observability.Info("mock providers started", "url", providers.URL())

	cfg := config.NewTestConfig()
	cfg.AlphaVantage.APIKey = "e2e"
	cfg.AlphaVantage.BaseURL = providers.AlphaVantageURL()
	cfg.NewsAPI.APIKey = "e2e"
	cfg.NewsAPI.BaseURL = providers.URL() + "/v2"
	cfg.Alpaca.DataURL = providers.URL()

	// Optional Postgres cache so the cache path can be exercised end to end
	if databaseURL := os.Getenv("E2E_DATABASE_URL"); databaseURL != "" {
		cfg.Cache.Backend = config.CachePostgres
		cfg.Database.URL = databaseURL
	}

	ctx := context.Background()

	application, cleanup, err := app.Build(ctx, cfg)
	if err != nil {
		observability.Fatal("failed to initialize application", "error", err)
	}
	defer cleanup()

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		observability.Info("starting E2E test server", "port", port, "url", fmt.Sprintf("http://localhost:%s", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down E2E test server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Error("server forced to shutdown", "error", err)
	}

	observability.Info("E2E test server stopped")
}
