package assets

import (
	"sort"
	"sync"

	"github.com/Faultbox/showcase/pkg/scene"
)

// Cache holds one template node per asset path. Callers never receive a
// template directly; the loader hands out clones.
type Cache struct {
	templates map[string]*scene.Node
	mu        sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		templates: make(map[string]*scene.Node),
	}
}

// Get retrieves a template from cache.
func (c *Cache) Get(key string) (*scene.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tmpl, ok := c.templates[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return tmpl, ok
}

// Has reports whether key is cached without touching the stats.
func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.templates[key]
	return ok
}

// Set stores a template, replacing any previous one for key.
func (c *Cache) Set(key string, tmpl *scene.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[key] = tmpl
}

// Delete removes the template for key and reports whether one was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.templates[key]
	delete(c.templates, key)
	return ok
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]*scene.Node)
	c.hits = 0
	c.misses = 0
}

// Keys returns the cached paths in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
