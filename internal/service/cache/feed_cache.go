package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"AgriPulse/internal/domain/models"
	pkgcache "AgriPulse/pkg/cache"
	"AgriPulse/pkg/util"
)

// DefaultFeedTTL is how long a government feed response stays fresh.
const DefaultFeedTTL = 10 * time.Minute

type feedEntry struct {
	at      time.Time
	records []models.FeedRecord
}

// FeedCache shields the government feed from repeat lookups. Entries are
// keyed by the normalized filter tuple and aged by wall-clock difference
// against the injected clock. An optional second level (Redis) survives
// process restarts; both levels are best effort and a failed write never
// fails the request.
type FeedCache struct {
	mu    sync.RWMutex
	m     map[string]feedEntry
	ttl   time.Duration
	clock util.Clock
	l2    pkgcache.Service
}

// FeedCacheOption configures FeedCache.
type FeedCacheOption func(*FeedCache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) FeedCacheOption {
	return func(c *FeedCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(clock util.Clock) FeedCacheOption {
	return func(c *FeedCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithL2 attaches a second cache level.
func WithL2(l2 pkgcache.Service) FeedCacheOption {
	return func(c *FeedCache) {
		c.l2 = l2
	}
}

// NewFeedCache creates a feed cache with the default TTL and system clock.
func NewFeedCache(opts ...FeedCacheOption) *FeedCache {
	c := &FeedCache{
		m:     make(map[string]feedEntry),
		ttl:   DefaultFeedTTL,
		clock: util.SystemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeedKey normalizes a feed request into a cache key.
func FeedKey(req models.FeedRequest) string {
	return pkgcache.GenerateKeyWithParams("feed",
		strings.ToLower(strings.TrimSpace(req.State)),
		strings.ToLower(strings.TrimSpace(req.District)),
		strings.ToLower(strings.TrimSpace(req.Commodity)),
		req.Limit,
	)
}

// Get returns fresh cached records, consulting the second level on a
// local miss.
func (c *FeedCache) Get(ctx context.Context, key string) ([]models.FeedRecord, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if ok && now.Sub(e.at) < c.ttl {
		return e.records, true
	}

	if c.l2 != nil {
		var records []models.FeedRecord
		if err := c.l2.Get(ctx, key, &records); err == nil {
			c.mu.Lock()
			c.m[key] = feedEntry{at: now, records: records}
			c.mu.Unlock()
			return records, true
		}
	}

	return nil, false
}

// Put stores records in both levels. Second-level failures are dropped.
func (c *FeedCache) Put(ctx context.Context, key string, records []models.FeedRecord) {
	c.mu.Lock()
	c.m[key] = feedEntry{at: c.clock.Now(), records: records}
	c.mu.Unlock()

	if c.l2 != nil {
		_ = c.l2.Set(ctx, key, records, c.ttl)
	}
}

// Purge drops every local entry. Second-level entries expire on their own.
func (c *FeedCache) Purge() {
	c.mu.Lock()
	c.m = make(map[string]feedEntry)
	c.mu.Unlock()
}
