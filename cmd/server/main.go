package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/internal/api"
	"github.com/mwarevito/financial-chat-analyzer/internal/app"
	"github.com/mwarevito/financial-chat-analyzer/observability"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	observability.InitLogger(cfg.IsProduction(), observability.ParseLevel(cfg.Observability.LogLevel))
	observability.InitMetrics()
	if envErr != nil {
		observability.Debug("no .env file found, using environment variables")
	}

	if err := observability.InitTracing(cfg.Observability.TracingEnabled); err != nil {
		observability.Warn("failed to initialize tracing", "error", err)
	} else if observability.TracingEnabled() {
		observability.Info("tracing enabled", "exporter", "stdout")
	}

	ctx := context.Background()

	application, cleanup, err := app.Build(ctx, cfg)
	if err != nil {
		observability.Fatal("failed to initialize application", "error", err)
	}
	defer cleanup()

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	requestTimeout := time.Duration(cfg.HTTP.RequestTimeoutSeconds) * time.Second
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout + 5*time.Second,
	}

	go func() {
		observability.Info("starting server", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Error("server forced to shutdown", "error", err)
	}
	if err := observability.ShutdownTracing(shutdownCtx); err != nil {
		observability.Warn("failed to flush traces", "error", err)
	}

	observability.Info("server stopped")
}
