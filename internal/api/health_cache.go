package api

import (
	"sync"
	"time"
)

// DefaultHealthCacheTTL is how long a cache backend probe result is reused
const DefaultHealthCacheTTL = 10 * time.Second

// HealthCache remembers the last cache backend probe so frequent health
// checks do not ping the backend every time
type HealthCache struct {
	mu        sync.RWMutex
	err       error
	checkedAt time.Time
	ttl       time.Duration
}

// NewHealthCache creates a HealthCache. A TTL of 0 disables caching.
func NewHealthCache(ttl time.Duration) *HealthCache {
	return &HealthCache{ttl: ttl}
}

// Get reports whether the cached probe is still fresh, and its result
func (c *HealthCache) Get() (valid bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	valid = !c.checkedAt.IsZero() && time.Since(c.checkedAt) < c.ttl
	return valid, c.err
}

// Set records a probe result
func (c *HealthCache) Set(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	c.checkedAt = time.Now()
}
