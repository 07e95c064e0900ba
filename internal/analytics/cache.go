package analytics

import (
	"fmt"
	"sync"
	"time"

	"outreach-analytics-service/internal/model"
)

// cacheEntry is an immutable memoized result; entries are only ever
// replaced or evicted by ClearCache, never mutated.
type cacheEntry struct {
	key       string
	value     model.AnalyticsResult
	timestamp time.Time
}

// resultCache memoizes full analytics results per engine instance,
// keyed by query options. Not shared globally.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]cacheEntry)}
}

// cacheKey serializes the options deterministically, excluding
// IncludeRealTime, which controls bypass rather than identity.
func cacheKey(startMs, endMs int64, groupBy string) string {
	return fmt.Sprintf("%d|%d|%s", startMs, endMs, groupBy)
}

func (c *resultCache) get(key string) (model.AnalyticsResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return model.AnalyticsResult{}, false
	}
	return entry.value, true
}

func (c *resultCache) set(key string, value model.AnalyticsResult, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{key: key, value: value, timestamp: now}
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
