package iconiq

import (
	"context"
	"image"
	"sync"
)

// CacheEntry is the snapshot stored per cache identity: the synthesized
// icon string and the size it resolved to.
type CacheEntry struct {
	Icon string
	Size ShapeSize
}

// ResultCache memoizes synthesized icons by their caller supplied identity.
// Entries are written once per key and never evicted; the key space is
// bounded by the number of distinct icon configurations an application
// defines, not by runtime data volume, so unbounded growth is accepted.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewResultCache instantiates an empty result cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]CacheEntry),
	}
}

// Lookup returns the entry stored under key. Pure read, no side effects.
func (c *ResultCache) Lookup(key string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Store writes the entry under key, overwriting unconditionally. Entries
// are values, so a caller mutating its descriptor after a hit never reaches
// back into the cached snapshot.
func (c *ResultCache) Store(key string, entry CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Len reports the number of cached icons.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageCache memoizes decoded images by their source string, be it a URL,
// a file path or a data URI. It only exists to keep many markers sharing a
// few distinct icons from decoding the same bytes over and over; it is
// consulted by the rendering layer, not by the synthesis strategies.
type ImageCache struct {
	mu     sync.RWMutex
	host   Host
	images map[string]image.Image
}

// NewImageCache instantiates an image cache loading through the given host.
// A nil host is allowed and turns every GetOrCreate into a no-op.
func NewImageCache(host Host) *ImageCache {
	return &ImageCache{
		host:   host,
		images: make(map[string]image.Image),
	}
}

// GetOrCreate returns the decoded image for src, loading and caching it on
// first use. It returns nil without error when src is empty or no host
// capability exists, mirroring a headless environment where no image
// elements can be constructed.
func (c *ImageCache) GetOrCreate(ctx context.Context, src string) (image.Image, error) {
	if src == "" || c.host == nil {
		return nil, nil
	}

	c.mu.RLock()
	img, ok := c.images[src]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := c.host.LoadImage(ctx, src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[src] = img
	c.mu.Unlock()

	return img, nil
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
