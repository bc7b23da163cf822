package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mwarevito/financial-chat-analyzer/config"
)

// NewRouter creates and configures a Chi router with all routes
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.HTTP.RequestTimeoutSeconds) * time.Second))
	r.Use(CORSMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Post("/analyze", h.HandleAnalyze)
	})

	return r
}
