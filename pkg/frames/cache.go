package frames

import (
	"container/list"
	"image"
	"sync"
)

// CacheKey identifies a transformed frame across playback instances.
type CacheKey struct {
	PayloadID string
	Index     int
	Transform string
	Width     int
	Height    int
}

// Cache stores transformed frames shared by every instance playing the same
// payload. Cached images are treated as immutable and are never returned to a
// buffer pool.
type Cache interface {
	Get(key CacheKey) (*image.RGBA, bool)
	Put(key CacheKey, img *image.RGBA)
}

// LRUCache is a Cache bounded by entry count.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[CacheKey]*list.Element

	hits   uint64
	misses uint64
}

type lruEntry struct {
	key CacheKey
	img *image.RGBA
}

// NewLRUCache returns a cache holding at most capacity frames.
// A non-positive capacity defaults to 64.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = 64
	}
	return &LRUCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[CacheKey]*list.Element),
	}
}

// Get returns the frame for key and marks it most recently used.
func (c *LRUCache) Get(key CacheKey) (*image.RGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).img, true
}

// Put stores img under key, evicting the least recently used frame when full.
func (c *LRUCache) Put(key CacheKey, img *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).img = img
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&lruEntry{key: key, img: img})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}
}

// Len returns the number of cached frames.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns the hit and miss counters.
func (c *LRUCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
