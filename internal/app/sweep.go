package app

import (
	"context"
	"sync"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/observability"
)

const (
	minCacheSweepInterval = time.Minute
	cacheSweepTimeout     = 30 * time.Second
)

// expiredCleaner is a cache store that has to delete its own expired entries
type expiredCleaner interface {
	Name() string
	CleanExpired(ctx context.Context) (int64, error)
}

// sweepInterval runs the sweep once per TTL, but never more than once a minute
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl < minCacheSweepInterval {
		return minCacheSweepInterval
	}
	return ttl
}

// startCacheSweep deletes expired entries every interval until the returned
// stop function is called. stop waits for an in-flight sweep to finish.
func startCacheSweep(cleaner expiredCleaner, interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sweepOnce(cleaner)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-finished
		})
	}
}

func sweepOnce(cleaner expiredCleaner) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheSweepTimeout)
	defer cancel()

	removed, err := cleaner.CleanExpired(ctx)
	if err != nil {
		observability.GetMetrics().RecordCacheError(cleaner.Name(), "clean_expired")
		observability.Warn("failed to remove expired cache entries", "backend", cleaner.Name(), "error", err)
		return
	}
	if removed > 0 {
		observability.Info("removed expired cache entries", "backend", cleaner.Name(), "removed", removed)
	} else {
		observability.Debug("no expired cache entries", "backend", cleaner.Name())
	}
}
