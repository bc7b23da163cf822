package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mwarevito/financial-chat-analyzer/agents"
	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/internal/app"
	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/observability"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

const maxRequestBytes = 1 << 20

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// AnalyzeRequest is the body of POST /api/analyze. Context carries the
// previous analysis for follow-up questions; the server keeps no state.
type AnalyzeRequest struct {
	Symbol  string                      `json:"symbol" validate:"required,max=10,symbol"`
	Query   string                      `json:"query" validate:"max=1000"`
	Context *models.ConversationContext `json:"context,omitempty"`
}

// ValidationError describes one invalid request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Handler handles HTTP API requests
type Handler struct {
	app         *app.App
	cfg         *config.Config
	validate    *validator.Validate
	healthCache *HealthCache
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return symbolPattern.MatchString(fl.Field().String())
	})

	return &Handler{
		app:         application,
		cfg:         cfg,
		validate:    validate,
		healthCache: NewHealthCache(DefaultHealthCacheTTL),
	}
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	cacheStatus := "not_configured"
	if cache := h.app.Cache(); cache != nil {
		valid, err := h.healthCache.Get()
		if !valid {
			err = cache.Health(r.Context())
			h.healthCache.Set(err)
		}
		if err == nil {
			cacheStatus = "connected"
		} else {
			cacheStatus = "disconnected"
			status["status"] = "degraded"
		}
		status["cache_backend"] = cache.Name()
	}
	status["cache"] = cacheStatus

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, http.StatusOK, status)
}

// HandleAnalyze analyzes a symbol or answers a follow-up about the
// analysis passed in the request context
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		h.jsonError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if errs := h.ValidateRequest(&req); len(errs) > 0 {
		h.jsonResponse(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid request",
			"fields": errs,
		})
		return
	}

	result, err := h.app.Analyze(r.Context(), req.Symbol, req.Query, req.Context)
	switch {
	case errors.Is(err, agents.ErrSymbolRequired):
		h.jsonError(w, "Symbol is required", http.StatusBadRequest)
		return
	case errors.Is(err, app.ErrQueueFull):
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		observability.Error("analysis failed", "symbol", req.Symbol, "error", err)
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// ValidateRequest returns one entry per invalid field
func (h *Handler) ValidateRequest(req *AnalyzeRequest) []ValidationError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []ValidationError{{Field: "request", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, ValidationError{Field: strings.ToLower(fe.Field()), Message: validationMessage(fe)})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " too long (max " + fe.Param() + " characters)"
	case "symbol":
		return "invalid symbol format (alphanumeric, dots, and dashes only)"
	default:
		return fe.Error()
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
