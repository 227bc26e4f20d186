package memory

import (
	"context"
	"sync"

	"github.com/aretw0/pathfinder/pkg/domain"
)

// Cache implements ports.DigestCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]domain.Fingerprint
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]domain.Fingerprint),
	}
}

// Get retrieves a fingerprint from memory.
func (c *Cache) Get(ctx context.Context, path string) (domain.Fingerprint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fp, ok := c.data[path]
	if !ok {
		return domain.Fingerprint{}, domain.ErrCacheMiss
	}
	return fp, nil
}

// Put stores the fingerprint.
func (c *Cache) Put(ctx context.Context, fp domain.Fingerprint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[fp.Path] = fp
	return nil
}

// Delete removes the fingerprint.
func (c *Cache) Delete(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, path)
	return nil
}

// List returns all cached paths.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.data))
	for p := range c.data {
		out = append(out, p)
	}
	return out, nil
}
