package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/agents"
	"github.com/mwarevito/financial-chat-analyzer/config"
	"github.com/mwarevito/financial-chat-analyzer/observability"
	"github.com/mwarevito/financial-chat-analyzer/repository"
	"github.com/mwarevito/financial-chat-analyzer/services"
)

// Build wires providers, the optional response cache and the advisor from
// cfg. The returned cleanup stops the expired-entry sweep and closes the
// cache connection.
func Build(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	store, err := openCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if store != nil {
		stopSweep := func() {}
		if cleaner, ok := store.(expiredCleaner); ok {
			stopSweep = startCacheSweep(cleaner, sweepInterval(time.Duration(cfg.Cache.TTLSeconds)*time.Second))
		}
		cleanup = func() {
			stopSweep()
			if err := store.Close(); err != nil {
				observability.Warn("failed to close cache", "backend", store.Name(), "error", err)
			}
		}
	}

	alphaVantage := services.NewAlphaVantageService(cfg.AlphaVantage.APIKey, cfg.AlphaVantage.BaseURL)
	if !cfg.HasAlphaVantage() {
		observability.Warn("ALPHA_VANTAGE_API_KEY not set, fundamental signal will be unavailable")
	}

	var prices services.PriceHistoryService = alphaVantage
	if cfg.Analysis.TechnicalProvider == config.ProviderAlpaca {
		if !cfg.HasAlpaca() {
			observability.Warn("Alpaca credentials not set, technical signal will be unavailable")
		}
		prices = services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, cfg.Analysis.LookbackDays)
	}

	var fundamentals services.FundamentalsService = alphaVantage

	var news services.NewsService = alphaVantage
	if cfg.HasNewsAPI() {
		news = services.NewNewsAPIService(cfg.NewsAPI.APIKey, cfg.NewsAPI.BaseURL)
	} else {
		observability.Info("NEWS_API_KEY not set, using Alpha Vantage news feed")
	}

	var cache CacheInterface
	if store != nil {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		prices = services.NewCachedPriceHistory(prices, store, ttl)
		fundamentals = services.NewCachedFundamentals(fundamentals, store, ttl)
		news = services.NewCachedNews(news, store, ttl)
		cache = store
	}

	advisor := agents.NewAdvisor(
		agents.NewTechnicalAnalyst(prices, agents.TrendRuleFromName(cfg.Analysis.TrendRule, cfg.Analysis.TrendLongPeriod)),
		agents.NewFundamentalAnalyst(fundamentals),
		agents.NewNewsAnalyst(news, cfg.Analysis.NewsLimit),
		time.Duration(cfg.Analysis.FetchTimeoutSeconds)*time.Second,
	)

	observability.Info("advisor ready",
		"technical_provider", cfg.Analysis.TechnicalProvider,
		"trend_rule", cfg.Analysis.TrendRule,
		"cache_backend", cfg.Cache.Backend)

	return New(cfg, advisor, cache), cleanup, nil
}

// closableStore is a response cache with a connection to release
type closableStore interface {
	repository.Store
	Close() error
}

type poolCloser struct {
	*repository.PostgresCache
}

func (p poolCloser) Close() error {
	p.PostgresCache.Close()
	return nil
}

func openCache(ctx context.Context, cfg *config.Config) (closableStore, error) {
	switch cfg.Cache.Backend {
	case config.CachePostgres:
		pg, err := repository.NewPostgresCache(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres cache: %w", err)
		}
		observability.Info("provider cache enabled", "backend", pg.Name())
		return poolCloser{pg}, nil
	case config.CacheRedis:
		rc := repository.NewRedisCache(repository.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rc.Health(ctx); err != nil {
			rc.Close()
			return nil, fmt.Errorf("failed to reach redis cache: %w", err)
		}
		observability.Info("provider cache enabled", "backend", rc.Name())
		return rc, nil
	default:
		return nil, nil
	}
}
