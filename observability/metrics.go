package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat_analyzer"

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Analysis metrics
	AnalysisRequestsTotal *prometheus.CounterVec
	AnalysisDuration      *prometheus.HistogramVec
	AnalysisErrorsTotal   *prometheus.CounterVec
	RecommendationActions *prometheus.CounterVec
	RecommendationScores  *prometheus.HistogramVec
	RecommendationRisk    *prometheus.CounterVec

	// Signal metrics
	SignalFetchDuration     *prometheus.HistogramVec
	SignalDegradationsTotal *prometheus.CounterVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Provider cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheErrorsTotal *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryTotal    *prometheus.CounterVec
	DBErrorsTotal   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// scoreBuckets cover the additive recommendation score range
var scoreBuckets = []float64{-8, -6, -4, -3, -2, -1, 0, 1, 2, 3, 4, 6, 8}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		// Analysis metrics
		AnalysisRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "requests_total",
				Help:      "Total number of analysis requests by kind (analysis or follow_up)",
			},
			[]string{"kind"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "duration_seconds",
				Help:      "Duration of an analysis in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"kind", "status"},
		),
		AnalysisErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "errors_total",
				Help:      "Total number of analysis requests rejected with an error",
			},
			[]string{"error_type"},
		),
		RecommendationActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recommendation",
				Name:      "actions_total",
				Help:      "Total number of recommendations by action",
			},
			[]string{"action"},
		),
		RecommendationScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "recommendation",
				Name:      "score",
				Help:      "Distribution of additive recommendation scores",
				Buckets:   scoreBuckets,
			},
			[]string{"action"},
		),
		RecommendationRisk: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recommendation",
				Name:      "risk_levels_total",
				Help:      "Total number of recommendations by risk level",
			},
			[]string{"risk_level"},
		),

		// Signal metrics
		SignalFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "signal",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of the provider fetch behind each signal in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"signal"},
		),
		SignalDegradationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signal",
				Name:      "degradations_total",
				Help:      "Total number of signals that fell back to N/A",
			},
			[]string{"signal", "error_type"},
		),

		// External API metrics
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),

		// Provider cache metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of provider cache hits",
			},
			[]string{"backend", "data_type"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of provider cache misses",
			},
			[]string{"backend", "data_type"},
		),
		CacheErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "errors_total",
				Help:      "Total number of provider cache errors",
			},
			[]string{"backend", "operation"},
		),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "database",
				Name:      "query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation", "table"},
		),
		DBQueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "database",
				Name:      "queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "database",
				Name:      "errors_total",
				Help:      "Total number of database errors",
			},
			[]string{"operation", "table"},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		// Circuit breaker metrics
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordAnalysisRequest records an analysis request of the given kind
func (m *Metrics) RecordAnalysisRequest(kind string) {
	m.AnalysisRequestsTotal.WithLabelValues(kind).Inc()
}

// RecordAnalysisDuration records the duration of an analysis
func (m *Metrics) RecordAnalysisDuration(kind, status string, duration time.Duration) {
	m.AnalysisDuration.WithLabelValues(kind, status).Observe(duration.Seconds())
}

// RecordAnalysisError records a rejected analysis
func (m *Metrics) RecordAnalysisError(errorType string) {
	m.AnalysisErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRecommendation records a recommendation
func (m *Metrics) RecordRecommendation(action string, score int, riskLevel string) {
	m.RecommendationActions.WithLabelValues(action).Inc()
	m.RecommendationScores.WithLabelValues(action).Observe(float64(score))
	m.RecommendationRisk.WithLabelValues(riskLevel).Inc()
}

// RecordSignalFetch records how long the fetch behind a signal took
func (m *Metrics) RecordSignalFetch(signal string, duration time.Duration) {
	m.SignalFetchDuration.WithLabelValues(signal).Observe(duration.Seconds())
}

// RecordSignalDegraded records a signal that fell back to N/A
func (m *Metrics) RecordSignalDegraded(signal, errorType string) {
	m.SignalDegradationsTotal.WithLabelValues(signal, errorType).Inc()
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordCacheHit records a provider cache hit
func (m *Metrics) RecordCacheHit(backend, dataType string) {
	m.CacheHitsTotal.WithLabelValues(backend, dataType).Inc()
}

// RecordCacheMiss records a provider cache miss
func (m *Metrics) RecordCacheMiss(backend, dataType string) {
	m.CacheMissesTotal.WithLabelValues(backend, dataType).Inc()
}

// RecordCacheError records a failed cache read or write
func (m *Metrics) RecordCacheError(backend, operation string) {
	m.CacheErrorsTotal.WithLabelValues(backend, operation).Inc()
}

// RecordDBQuery records a database query
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration) {
	m.DBQueryTotal.WithLabelValues(operation, table).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDBError records a database error
func (m *Metrics) RecordDBError(operation, table string) {
	m.DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveAnalysis records the analysis duration and status
func (t *Timer) ObserveAnalysis(kind, status string) {
	t.metrics.RecordAnalysisDuration(kind, status, time.Since(t.start))
}

// ObserveSignal records the fetch duration behind a signal
func (t *Timer) ObserveSignal(signal string) {
	t.metrics.RecordSignalFetch(signal, time.Since(t.start))
}

// ObserveExternalAPI records the external API duration
func (t *Timer) ObserveExternalAPI(service, operation string) {
	t.metrics.RecordExternalAPIDuration(service, operation, time.Since(t.start))
}

// ObserveDB records the database query duration
func (t *Timer) ObserveDB(operation, table string) {
	t.metrics.RecordDBQuery(operation, table, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
