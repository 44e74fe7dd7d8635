package pricing

import (
	"sync"
	"time"
)

// Cache is the freshness capability the pricing service depends on. The
// interface exists so callers can inject their own store; the metrics
// engine never owns or touches cache state.
type Cache interface {
	Get(key string) (Quote, bool)
	Set(key string, q Quote)
}

// TTLCache is an in-memory Cache whose entries expire after a fixed TTL.
// Safe for concurrent use.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time // stubbed in tests
}

type cacheEntry struct {
	quote   Quote
	expires time.Time
}

// NewTTLCache creates a TTLCache with the given time-to-live.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached quote for key if it has not expired. Expired
// entries are evicted on access.
func (c *TTLCache) Get(key string) (Quote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Quote{}, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return Quote{}, false
	}
	q := entry.quote
	q.Source = "cache"
	return q, true
}

// Set stores a quote under key with the cache's TTL.
func (c *TTLCache) Set(key string, q Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{quote: q, expires: c.now().Add(c.ttl)}
}
