package translate

import (
	"sync"

	"github.com/roach88/rowfilter/internal/expr"
)

// DefaultCacheSize is used when NewCache is given a non-positive size.
const DefaultCacheSize = 256

// Cache memoizes Translate by expression fingerprint. When it reaches its
// size limit it is cleared. Failed translations are not stored.
//
// Cache is safe for concurrent use. Cached Statements are shared between
// callers.
type Cache struct {
	mu      sync.RWMutex
	max     int
	entries map[string]*Statement
}

// NewCache creates a cache holding at most max statements.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		max:     max,
		entries: make(map[string]*Statement),
	}
}

// Translate returns the cached Statement for an identical tree, translating
// and storing it on a miss.
func (c *Cache) Translate(root expr.Node) (*Statement, error) {
	key, err := expr.Fingerprint(root)
	if err != nil {
		// Unhashable trees are translated uncached; Translate reports
		// the structural problem.
		return Translate(root)
	}

	c.mu.RLock()
	stmt, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	stmt, err = Translate(root)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	if len(c.entries) >= c.max {
		clear(c.entries)
	}
	c.entries[key] = stmt
	return stmt, nil
}

// Len returns the number of cached statements.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
