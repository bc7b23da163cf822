package app

import (
	"context"
	"errors"

	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/models"
)

// ErrQueueFull is returned when the concurrent analysis limit is reached
var ErrQueueFull = errors.New("analysis queue full, too many concurrent requests - try again later")

// ErrAdvisorNotInitialized is returned when no advisor is wired in
var ErrAdvisorNotInitialized = errors.New("advisor not initialized")

// AdvisorInterface defines the analysis operation
type AdvisorInterface interface {
	Analyze(ctx context.Context, symbol, query string, prev *models.ConversationContext) (*models.AnalysisResult, error)
}

// CacheInterface is the provider cache as seen by the health check
type CacheInterface interface {
	Name() string
	Health(ctx context.Context) error
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg         *config.Config
	advisor     AdvisorInterface
	cache       CacheInterface
	analysisSem chan struct{}
}

// New creates a new App. cache may be nil when caching is disabled.
func New(cfg *config.Config, advisor AdvisorInterface, cache CacheInterface) *App {
	limit := cfg.Analysis.ConcurrencyLimit
	if limit <= 0 {
		limit = 1
	}
	return &App{
		cfg:         cfg,
		advisor:     advisor,
		cache:       cache,
		analysisSem: make(chan struct{}, limit),
	}
}

// Cache returns the provider cache, or nil when caching is disabled
func (a *App) Cache() CacheInterface {
	return a.cache
}

// Analyze runs one analysis, rejecting the request when too many are in flight
func (a *App) Analyze(ctx context.Context, symbol, query string, prev *models.ConversationContext) (*models.AnalysisResult, error) {
	if a.advisor == nil {
		return nil, ErrAdvisorNotInitialized
	}

	select {
	case a.analysisSem <- struct{}{}:
		defer func() { <-a.analysisSem }()
	default:
		return nil, ErrQueueFull
	}

	return a.advisor.Analyze(ctx, symbol, query, prev)
}

// AnalysisSemCapacity returns the capacity of the analysis semaphore (for testing)
func (a *App) AnalysisSemCapacity() int {
	return cap(a.analysisSem)
}
