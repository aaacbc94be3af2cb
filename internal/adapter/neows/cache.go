package neows

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// CachedSource wraps a catalog.Source with an in-memory LRU cache over
// Lookup calls. Feed results change with every date window and pass
// through uncached.
type CachedSource struct {
	inner   catalog.Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a catalog source.
func NewCachedSource(inner catalog.Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Feed(ctx context.Context, start, end time.Time) ([]catalog.Asteroid, error) {
	return c.inner.Feed(ctx, start, end)
}

func (c *CachedSource) Lookup(ctx context.Context, id string) (catalog.Asteroid, error) {
	if a, ok := c.cache.get(id); ok {
		c.countCache("hit")
		return a, nil
	}
	c.countCache("miss")

	a, err := c.inner.Lookup(ctx, id)
	if err != nil {
		return a, err
	}
	// Only cache resolved objects so transient failures can be retried.
	if a.ID != "" {
		c.cache.put(id, a)
	}
	return a, nil
}

func (c *CachedSource) countCache(result string) {
	if c.metrics != nil {
		c.metrics.NeoCache.WithLabelValues("lookup", result).Inc()
	}
}

// lruCache is a simple thread-safe LRU cache for catalog objects.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value catalog.Asteroid
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (catalog.Asteroid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return catalog.Asteroid{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value catalog.Asteroid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
