package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// External service configurations
	AlphaVantage AlphaVantageConfig
	NewsAPI      NewsAPIConfig
	Alpaca       AlpacaConfig

	// Analysis configuration
	Analysis AnalysisConfig

	// Provider response cache configuration
	Cache    CacheConfig
	Database DatabaseConfig
	Redis    RedisConfig

	// HTTP configuration
	HTTP HTTPConfig

	// Logging and tracing
	Observability ObservabilityConfig
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	APIKey  string
	BaseURL string
}

// NewsAPIConfig holds NewsAPI configuration
type NewsAPIConfig struct {
	APIKey  string
	BaseURL string
}

// AlpacaConfig holds Alpaca market data configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	DataURL   string
}

// AnalysisConfig holds the fetch and signal derivation settings
type AnalysisConfig struct {
	TechnicalProvider   string // alphavantage or alpaca
	FetchTimeoutSeconds int
	NewsLimit           int
	TrendRule           string // two or three
	TrendLongPeriod     int
	LookbackDays        int // calendar days of bars requested from alpaca
	ConcurrencyLimit    int
}

// CacheConfig holds provider response cache configuration
type CacheConfig struct {
	Backend    string // none, postgres or redis
	TTLSeconds int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr                  string
	CORSAllowedOrigins    string
	RequestTimeoutSeconds int
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or text
	TracingEnabled bool
}

// Technical providers
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderAlpaca       = "alpaca"
)

// Trend rules
const (
	TrendRuleTwo   = "two"
	TrendRuleThree = "three"
)

// Cache backends
const (
	CacheNone     = "none"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		AlphaVantage: AlphaVantageConfig{
			APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
			BaseURL: getEnvString("ALPHA_VANTAGE_BASE_URL", "https://www.alphavantage.co/query"),
		},
		NewsAPI: NewsAPIConfig{
			APIKey:  os.Getenv("NEWS_API_KEY"),
			BaseURL: getEnvString("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
			DataURL:   getEnvString("ALPACA_DATA_URL", "https://data.alpaca.markets"),
		},
		Analysis: AnalysisConfig{
			TechnicalProvider:   strings.ToLower(getEnvString("TECHNICAL_PROVIDER", ProviderAlphaVantage)),
			FetchTimeoutSeconds: getEnvInt("FETCH_TIMEOUT_SECONDS", 5),
			NewsLimit:           getEnvInt("NEWS_LIMIT", 10),
			TrendRule:           strings.ToLower(getEnvString("TREND_RULE", TrendRuleTwo)),
			TrendLongPeriod:     getEnvInt("TREND_LONG_PERIOD", 50),
			LookbackDays:        getEnvInt("TECHNICAL_LOOKBACK_DAYS", 100),
			ConcurrencyLimit:    getEnvInt("ANALYSIS_CONCURRENCY_LIMIT", 10),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(getEnvString("CACHE_BACKEND", CacheNone)),
			TTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntNonNegative("REDIS_DB", 0),
		},
		HTTP: HTTPConfig{
			Addr:                  getEnvString("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins:    getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 30),
		},
		Observability: ObservabilityConfig{
			LogLevel:       strings.ToLower(getEnvString("LOG_LEVEL", "info")),
			LogFormat:      strings.ToLower(getEnvString("LOG_FORMAT", "json")),
			TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Analysis.TechnicalProvider {
	case ProviderAlphaVantage, ProviderAlpaca:
	default:
		return fmt.Errorf("TECHNICAL_PROVIDER must be %q or %q, got %q",
			ProviderAlphaVantage, ProviderAlpaca, c.Analysis.TechnicalProvider)
	}

	switch c.Analysis.TrendRule {
	case TrendRuleTwo, TrendRuleThree:
	default:
		return fmt.Errorf("TREND_RULE must be %q or %q, got %q", TrendRuleTwo, TrendRuleThree, c.Analysis.TrendRule)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheRedis:
	case CachePostgres:
		if !c.HasDatabase() {
			return fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of none, postgres, redis, got %q", c.Cache.Backend)
	}

	// Validate positive integers
	if c.Analysis.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be positive, got %d", c.Analysis.FetchTimeoutSeconds)
	}
	if c.Analysis.NewsLimit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive, got %d", c.Analysis.NewsLimit)
	}
	if c.Analysis.TrendLongPeriod <= 20 {
		return fmt.Errorf("TREND_LONG_PERIOD must be greater than 20, got %d", c.Analysis.TrendLongPeriod)
	}
	if c.Analysis.ConcurrencyLimit <= 0 {
		return fmt.Errorf("ANALYSIS_CONCURRENCY_LIMIT must be positive, got %d", c.Analysis.ConcurrencyLimit)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", c.Cache.TTLSeconds)
	}

	return nil
}

// HasDatabase returns true if database configuration is available
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasAlpaca returns true if Alpaca configuration is available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

// HasAlphaVantage returns true if Alpha Vantage configuration is available
func (c *Config) HasAlphaVantage() bool {
	return c.AlphaVantage.APIKey != ""
}

// HasNewsAPI returns true if NewsAPI configuration is available
func (c *Config) HasNewsAPI() bool {
	return c.NewsAPI.APIKey != ""
}

// IsProduction reports whether logs should be emitted as JSON
func (c *Config) IsProduction() bool {
	return c.Observability.LogFormat != "text"
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvIntNonNegative(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		AlphaVantage: AlphaVantageConfig{
			APIKey:  "",
			BaseURL: "https://www.alphavantage.co/query",
		},
		NewsAPI: NewsAPIConfig{
			APIKey:  "",
			BaseURL: "https://newsapi.org/v2",
		},
		Alpaca: AlpacaConfig{
			DataURL: "https://data.alpaca.markets",
		},
		Analysis: AnalysisConfig{
			TechnicalProvider:   ProviderAlphaVantage,
			FetchTimeoutSeconds: 5,
			NewsLimit:           10,
			TrendRule:           TrendRuleTwo,
			TrendLongPeriod:     50,
			LookbackDays:        100,
			ConcurrencyLimit:    10,
		},
		Cache: CacheConfig{
			Backend:    CacheNone,
			TTLSeconds: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		HTTP: HTTPConfig{
			Addr:                  ":8080",
			CORSAllowedOrigins:    "*",
			RequestTimeoutSeconds: 30,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}
