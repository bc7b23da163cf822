package config

import (
	"os"
	"testing"
)

// saveEnv saves current environment variables for restoration
func saveEnv(t *testing.T, keys []string) map[string]string {
	t.Helper()
	saved := make(map[string]string)
	for _, key := range keys {
		saved[key] = os.Getenv(key)
	}
	return saved
}

// restoreEnv restores previously saved environment variables
func restoreEnv(t *testing.T, saved map[string]string) {
	t.Helper()
	for key, val := range saved {
		if val == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, val)
		}
	}
}

// clearEnv clears environment variables
func clearEnv(t *testing.T, keys []string) {
	t.Helper()
	for _, key := range keys {
		os.Unsetenv(key)
	}
}

var allEnvKeys = []string{
	"ALPHA_VANTAGE_API_KEY",
	"ALPHA_VANTAGE_BASE_URL",
	"NEWS_API_KEY",
	"NEWS_API_BASE_URL",
	"ALPACA_API_KEY",
	"ALPACA_API_SECRET",
	"ALPACA_DATA_URL",
	"TECHNICAL_PROVIDER",
	"FETCH_TIMEOUT_SECONDS",
	"NEWS_LIMIT",
	"TREND_RULE",
	"TREND_LONG_PERIOD",
	"TECHNICAL_LOOKBACK_DAYS",
	"ANALYSIS_CONCURRENCY_LIMIT",
	"CACHE_BACKEND",
	"CACHE_TTL_SECONDS",
	"DATABASE_URL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"HTTP_ADDR",
	"CORS_ALLOWED_ORIGINS",
	"REQUEST_TIMEOUT_SECONDS",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"TRACING_ENABLED",
}

func TestLoad_Defaults(t *testing.T) {
	saved := saveEnv(t, allEnvKeys)
	defer restoreEnv(t, saved)
	clearEnv(t, allEnvKeys)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Analysis.FetchTimeoutSeconds != 5 {
		t.Errorf("expected FetchTimeoutSeconds=5, got %d", cfg.Analysis.FetchTimeoutSeconds)
	}
	if cfg.Analysis.NewsLimit != 10 {
		t.Errorf("expected NewsLimit=10, got %d", cfg.Analysis.NewsLimit)
	}
	if cfg.Analysis.TrendRule != TrendRuleTwo {
		t.Errorf("expected TrendRule=two, got %s", cfg.Analysis.TrendRule)
	}
	if cfg.Analysis.TrendLongPeriod != 50 {
		t.Errorf("expected TrendLongPeriod=50, got %d", cfg.Analysis.TrendLongPeriod)
	}
	if cfg.Analysis.TechnicalProvider != ProviderAlphaVantage {
		t.Errorf("expected TechnicalProvider=alphavantage, got %s", cfg.Analysis.TechnicalProvider)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("expected Cache.Backend=none, got %s", cfg.Cache.Backend)
	}
	if cfg.AlphaVantage.BaseURL != "https://www.alphavantage.co/query" {
		t.Errorf("unexpected AlphaVantage.BaseURL %s", cfg.AlphaVantage.BaseURL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected HTTP.Addr=:8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.HTTP.CORSAllowedOrigins != "*" {
		t.Errorf("expected CORSAllowedOrigins='*', got %s", cfg.HTTP.CORSAllowedOrigins)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected Redis.DB=0, got %d", cfg.Redis.DB)
	}
	if cfg.Observability.TracingEnabled {
		t.Error("expected tracing disabled by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	saved := saveEnv(t, allEnvKeys)
	defer restoreEnv(t, saved)
	clearEnv(t, allEnvKeys)

	os.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	os.Setenv("ALPHA_VANTAGE_BASE_URL", "http://localhost:9000/query")
	os.Setenv("NEWS_API_KEY", "news-key")
	os.Setenv("TECHNICAL_PROVIDER", "Alpaca")
	os.Setenv("FETCH_TIMEOUT_SECONDS", "8")
	os.Setenv("NEWS_LIMIT", "20")
	os.Setenv("TREND_RULE", "three")
	os.Setenv("TREND_LONG_PERIOD", "200")
	os.Setenv("CACHE_BACKEND", "postgres")
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("LOG_FORMAT", "text")
	os.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with custom values failed: %v", err)
	}

	if cfg.AlphaVantage.APIKey != "av-key" {
		t.Errorf("expected AlphaVantage.APIKey='av-key', got %s", cfg.AlphaVantage.APIKey)
	}
	if cfg.AlphaVantage.BaseURL != "http://localhost:9000/query" {
		t.Errorf("unexpected AlphaVantage.BaseURL %s", cfg.AlphaVantage.BaseURL)
	}
	if cfg.Analysis.TechnicalProvider != ProviderAlpaca {
		t.Errorf("expected TechnicalProvider=alpaca, got %s", cfg.Analysis.TechnicalProvider)
	}
	if cfg.Analysis.FetchTimeoutSeconds != 8 {
		t.Errorf("expected FetchTimeoutSeconds=8, got %d", cfg.Analysis.FetchTimeoutSeconds)
	}
	if cfg.Analysis.NewsLimit != 20 {
		t.Errorf("expected NewsLimit=20, got %d", cfg.Analysis.NewsLimit)
	}
	if cfg.Analysis.TrendRule != TrendRuleThree {
		t.Errorf("expected TrendRule=three, got %s", cfg.Analysis.TrendRule)
	}
	if cfg.Analysis.TrendLongPeriod != 200 {
		t.Errorf("expected TrendLongPeriod=200, got %d", cfg.Analysis.TrendLongPeriod)
	}
	if cfg.Cache.Backend != CachePostgres {
		t.Errorf("expected Cache.Backend=postgres, got %s", cfg.Cache.Backend)
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("expected Redis.DB=2, got %d", cfg.Redis.DB)
	}
	if cfg.IsProduction() {
		t.Error("expected text log format to disable production logging")
	}
	if !cfg.Observability.TracingEnabled {
		t.Error("expected tracing enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"unknown provider", func(c *Config) { c.Analysis.TechnicalProvider = "yahoo" }, true},
		{"unknown trend rule", func(c *Config) { c.Analysis.TrendRule = "four" }, true},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"postgres cache without database", func(c *Config) { c.Cache.Backend = CachePostgres }, true},
		{"postgres cache with database", func(c *Config) {
			c.Cache.Backend = CachePostgres
			c.Database.URL = "postgres://localhost/test"
		}, false},
		{"redis cache", func(c *Config) { c.Cache.Backend = CacheRedis }, false},
		{"zero fetch timeout", func(c *Config) { c.Analysis.FetchTimeoutSeconds = 0 }, true},
		{"zero news limit", func(c *Config) { c.Analysis.NewsLimit = 0 }, true},
		{"long period not above 20", func(c *Config) { c.Analysis.TrendLongPeriod = 20 }, true},
		{"zero concurrency", func(c *Config) { c.Analysis.ConcurrencyLimit = 0 }, true},
		{"zero cache ttl", func(c *Config) { c.Cache.TTLSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_InvalidNumbersUseDefaults(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
	}{
		{"negative timeout", "FETCH_TIMEOUT_SECONDS", "-5"},
		{"zero concurrency", "ANALYSIS_CONCURRENCY_LIMIT", "0"},
		{"invalid news limit", "NEWS_LIMIT", "not-a-number"},
		{"negative redis db", "REDIS_DB", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := saveEnv(t, allEnvKeys)
			defer restoreEnv(t, saved)
			clearEnv(t, allEnvKeys)

			os.Setenv(tt.envKey, tt.envVal)

			if _, err := Load(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestHasAlpaca(t *testing.T) {
	cfg := &Config{
		Alpaca: AlpacaConfig{APIKey: "", APISecret: ""},
	}
	if cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return false for empty config")
	}

	cfg.Alpaca.APIKey = "key"
	if cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return false without secret")
	}

	cfg.Alpaca.APISecret = "secret"
	if !cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return true for complete config")
	}
}

func TestHasAlphaVantage(t *testing.T) {
	cfg := &Config{}
	if cfg.HasAlphaVantage() {
		t.Error("expected HasAlphaVantage() to return false for empty key")
	}

	cfg.AlphaVantage.APIKey = "key"
	if !cfg.HasAlphaVantage() {
		t.Error("expected HasAlphaVantage() to return true for non-empty key")
	}
}

func TestHasNewsAPI(t *testing.T) {
	cfg := &Config{}
	if cfg.HasNewsAPI() {
		t.Error("expected HasNewsAPI() to return false for empty key")
	}

	cfg.NewsAPI.APIKey = "key"
	if !cfg.HasNewsAPI() {
		t.Error("expected HasNewsAPI() to return true for non-empty key")
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_GET_ENV_INT"
	defer os.Unsetenv(key)

	os.Unsetenv(key)
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	os.Setenv(key, "100")
	if got := getEnvInt(key, 42); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}

	os.Setenv(key, "invalid")
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42 for invalid value, got %d", got)
	}

	os.Setenv(key, "0")
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42 for zero value, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_GET_ENV_BOOL"
	defer os.Unsetenv(key)

	os.Unsetenv(key)
	if got := getEnvBool(key, true); !got {
		t.Error("expected default true")
	}

	os.Setenv(key, "false")
	if got := getEnvBool(key, true); got {
		t.Error("expected false")
	}

	os.Setenv(key, "maybe")
	if got := getEnvBool(key, true); !got {
		t.Error("expected default for invalid value")
	}
}
