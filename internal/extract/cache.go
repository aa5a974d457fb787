package extract

import (
	"context"
	"sync"
	"time"

	"github.com/duescan/duescan/internal/model"
)

// MemoryCache is the in-process ExtractionCache. Entries live for the
// session; Clear is the only removal path (inputs are bounded by the UI's
// paste size cap, so no eviction policy is needed).
type MemoryCache struct {
	entries map[string]model.CacheEntry
	hits    int64
	misses  int64
	mu      sync.RWMutex
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]model.CacheEntry)}
}

// Get returns a copy of the cached result so callers cannot mutate the
// stored entry. Item identifiers are preserved across hits.
func (c *MemoryCache) Get(_ context.Context, key string) (*model.ExtractionResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return entry.Result.Clone(), true, nil
}

// Put stores a copy of the result under the key.
func (c *MemoryCache) Put(_ context.Context, key string, result *model.ExtractionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = model.CacheEntry{
		Key:       key,
		Result:    result.Clone(),
		CreatedAt: time.Now(),
	}
	return nil
}

// Clear removes every entry; hit/miss counters are preserved.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]model.CacheEntry)
	return nil
}

// Stats reports the current counters.
func (c *MemoryCache) Stats(_ context.Context) (model.CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := model.CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRateRaw = float64(c.hits) / float64(total)
	}
	return stats, nil
}

// RecordHit increments the hit counter.
func (c *MemoryCache) RecordHit(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
	return nil
}

// RecordMiss increments the miss counter.
func (c *MemoryCache) RecordMiss(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	return nil
}
