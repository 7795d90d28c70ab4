package texture

import (
	"image"
	"sync"
)

type cacheKey struct {
	path string
	w, h int
}

// Cache holds backdrops already decoded and fitted to a canvas size.
// It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]*image.NRGBA
	load  func(string) (*image.NRGBA, error)
}

// NewCache creates an empty backdrop cache.
func NewCache() *Cache {
	return &Cache{
		items: make(map[cacheKey]*image.NRGBA),
		load:  LoadBackdrop,
	}
}

// Backdrop returns the image at path scaled to w×h, decoding it at most once
// per size. Failed loads are not cached.
func (c *Cache) Backdrop(path string, w, h int) (*image.NRGBA, error) {
	key := cacheKey{path, w, h}

	// Fast path: read lock
	c.mu.RLock()
	img, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	// Slow path: load from disk
	src, err := c.load(path)
	if err != nil {
		return nil, err
	}
	fitted := Fit(src, w, h)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.items[key]; ok {
		return img, nil
	}
	c.items[key] = fitted
	return fitted, nil
}

// Len reports how many fitted backdrops are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
