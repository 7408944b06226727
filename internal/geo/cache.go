package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"dispatch/internal/domain"
)

// MemoryCache is an in-process resolver cache with per-entry TTL. A zero
// TTL keeps entries for the cache's lifetime, which suits request-scoped
// resolvers.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	coord   domain.Coordinate
	savedAt time.Time
}

// NewMemoryCache creates a MemoryCache. ttl <= 0 disables expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached coordinate for text, if present and fresh.
func (c *MemoryCache) Get(_ context.Context, text string) (domain.Coordinate, bool) {
	key := cacheKey(text)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return domain.Coordinate{}, false
	}

	if c.ttl > 0 && time.Since(entry.savedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return domain.Coordinate{}, false
	}

	return entry.coord, true
}

// Set stores a resolved coordinate for text.
func (c *MemoryCache) Set(_ context.Context, text string, coord domain.Coordinate) {
	c.mu.Lock()
	c.entries[cacheKey(text)] = memoryEntry{coord: coord, savedAt: time.Now()}
	c.mu.Unlock()
}

func cacheKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

var _ Cache = (*MemoryCache)(nil)
