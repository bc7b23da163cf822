package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mwarevito/financial-chat-analyzer/models"
	"github.com/mwarevito/financial-chat-analyzer/observability"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

// ErrSymbolRequired is returned when Analyze is called without a symbol
var ErrSymbolRequired = errors.New("symbol is required")

const defaultFetchTimeout = 5 * time.Second

// Analysis kinds used as metric labels
const (
	KindAnalysis = "analysis"
	KindFollowUp = "follow_up"
)

// Advisor fans out to the three analysts and scores their signals
type Advisor struct {
	technical    TechnicalSource
	fundamental  FundamentalSource
	sentiment    SentimentSource
	fetchTimeout time.Duration
}

// NewAdvisor creates a new Advisor. Each fetch is bounded by fetchTimeout.
func NewAdvisor(technical TechnicalSource, fundamental FundamentalSource, sentiment SentimentSource, fetchTimeout time.Duration) *Advisor {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Advisor{
		technical:    technical,
		fundamental:  fundamental,
		sentiment:    sentiment,
		fetchTimeout: fetchTimeout,
	}
}

// Analyze answers a query about symbol. A follow-up query about the symbol
// in prev is answered from prev without fetching. Provider failures degrade
// the affected signal to N/A; only a missing symbol is an error.
func (a *Advisor) Analyze(ctx context.Context, symbol, query string, prev *models.ConversationContext) (*models.AnalysisResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		observability.GetMetrics().RecordAnalysisError("symbol_required")
		return nil, ErrSymbolRequired
	}

	if prev != nil && prev.Analysis != nil && strings.EqualFold(prev.Symbol, symbol) && IsFollowUp(query) {
		return a.followUp(symbol, query, prev.Analysis), nil
	}

	ctx, span := observability.StartSpan(ctx, "advisor.analyze",
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	metrics := observability.GetMetrics()
	metrics.RecordAnalysisRequest(KindAnalysis)
	timer := metrics.NewTimer()

	result := models.NewAnalysisResult(symbol, query)

	// Each goroutine writes only its own signal and error
	var wg sync.WaitGroup
	var techErr, fundErr, sentErr error
	wg.Add(3)
	go func() {
		defer wg.Done()
		techErr = a.fetch(ctx, symbol, models.SignalTechnical, func(ctx context.Context) (err error) {
			result.Technical, err = a.technical.Analyze(ctx, symbol)
			return err
		})
	}()
	go func() {
		defer wg.Done()
		fundErr = a.fetch(ctx, symbol, models.SignalFundamental, func(ctx context.Context) (err error) {
			result.Fundamental, err = a.fundamental.Analyze(ctx, symbol)
			return err
		})
	}()
	go func() {
		defer wg.Done()
		sentErr = a.fetch(ctx, symbol, models.SignalSentiment, func(ctx context.Context) (err error) {
			result.Sentiment, err = a.sentiment.Analyze(ctx, symbol)
			return err
		})
	}()
	wg.Wait()

	a.degrade(result, models.SignalTechnical, techErr)
	a.degrade(result, models.SignalFundamental, fundErr)
	a.degrade(result, models.SignalSentiment, sentErr)

	result.NewsCount = result.Sentiment.ArticleCount
	result.Recommendation = Recommend(result.Technical, result.Fundamental, result.Sentiment)
	result.Summary = FormatSummary(result)

	status := "complete"
	if len(result.Degraded) > 0 {
		status = "partial"
	}
	timer.ObserveAnalysis(KindAnalysis, status)
	metrics.RecordRecommendation(string(result.Recommendation.Action), result.Recommendation.Score, string(result.Recommendation.RiskLevel))

	span.SetAttributes(
		attribute.String("action", string(result.Recommendation.Action)),
		attribute.Int("score", result.Recommendation.Score),
		attribute.Int("degraded", len(result.Degraded)),
	)

	observability.Info("analysis complete",
		"symbol", symbol,
		"action", result.Recommendation.Action,
		"score", result.Recommendation.Score,
		"risk_level", result.Recommendation.RiskLevel,
		"data_completeness", result.DataCompleteness(),
		"duration_ms", timer.Duration().Milliseconds())

	return result, nil
}

// fetch runs one analyst under its own timeout and span
func (a *Advisor) fetch(ctx context.Context, symbol string, signal models.SignalType, fn func(context.Context) error) error {
	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	fetchCtx, span := observability.StartSpan(fetchCtx, "advisor.fetch."+string(signal),
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	timer := observability.GetMetrics().NewTimer()
	err := fn(fetchCtx)
	timer.ObserveSignal(string(signal))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, services.ClassifyError(err))
	}
	return err
}

// degrade records why a signal is N/A. The signal itself was already set
// to its absent form by the analyst.
func (a *Advisor) degrade(result *models.AnalysisResult, signal models.SignalType, err error) {
	if err == nil {
		return
	}

	errorType := services.ClassifyError(err)
	result.Degraded = append(result.Degraded, models.DegradedSignal{
		Signal:    signal,
		ErrorType: errorType,
		Reason:    err.Error(),
	})

	observability.GetMetrics().RecordSignalDegraded(string(signal), errorType)
	observability.WithSignal(result.Symbol, string(signal)).Warn("signal unavailable, continuing without it",
		"error_type", errorType,
		"error", err)
}

// followUp answers from the previous analysis, reusing its signals
func (a *Advisor) followUp(symbol, query string, prev *models.AnalysisResult) *models.AnalysisResult {
	metrics := observability.GetMetrics()
	metrics.RecordAnalysisRequest(KindFollowUp)
	timer := metrics.NewTimer()

	result := models.NewAnalysisResult(symbol, query)
	result.Technical = prev.Technical
	result.Fundamental = prev.Fundamental
	result.Sentiment = prev.Sentiment
	result.Recommendation = prev.Recommendation
	result.NewsCount = prev.NewsCount
	result.Degraded = prev.Degraded
	result.FollowUp = true
	result.Summary = AnswerFollowUp(query, prev)

	timer.ObserveAnalysis(KindFollowUp, "complete")
	observability.Debug("answered follow-up from previous analysis", "symbol", symbol)

	return result
}
