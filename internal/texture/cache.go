package texture

import "sync"

// Cache is a concurrency-safe path-keyed image cache. Multiple draws in a
// scene frequently share textures.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]*Image
}

type cacheKey struct {
	path string
	srgb bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[cacheKey]*Image)}
}

// Load returns the cached image for path or loads it from disk.
func (c *Cache) Load(path string, srgb bool) (*Image, error) {
	key := cacheKey{path: path, srgb: srgb}

	c.mu.RLock()
	if img, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path, srgb)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if prev, ok := c.items[key]; ok {
		c.mu.Unlock()
		return prev, nil
	}
	c.items[key] = img
	c.mu.Unlock()

	return img, nil
}
