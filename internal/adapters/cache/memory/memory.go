package memory

import (
	"sync"
	"time"

	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/pkg/schema"
)

type entry struct {
	models    []schema.ModelDescriptor
	fetchedAt time.Time
}

// Cache is the in-process ModelCache. Entries never expire here; freshness
// is judged by the discovery service so stale entries stay readable for the
// fallback ladder.
type Cache struct {
	entries map[string]entry
	mu      sync.RWMutex
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

func (c *Cache) Get(key string) ([]schema.ModelDescriptor, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}

	// Copy so no caller holds a mutable reference into the entry.
	models := make([]schema.ModelDescriptor, len(e.models))
	copy(models, e.models)
	return models, e.fetchedAt, true
}

func (c *Cache) Put(key string, models []schema.ModelDescriptor, fetchedAt time.Time) error {
	stored := make([]schema.ModelDescriptor, len(models))
	copy(stored, models)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{models: stored, fetchedAt: fetchedAt}
	return nil
}

func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

var _ ports.ModelCache = (*Cache)(nil)
