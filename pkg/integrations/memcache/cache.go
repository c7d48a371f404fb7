package memcache

import (
	"sync"
	"time"

	"github.com/RenzoMaggi16/vestra/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a mutex-guarded in-memory cache with a fixed TTL per cache.
// Entries older than the TTL are invisible to Get and Keys; a TTL of zero
// means entries never expire.
type Cache[K comparable, V any] struct {
	data  map[K]entry[V]
	ttl   time.Duration
	now   func() time.Time
	mutex sync.RWMutex
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithTTL sets the expiry window for all entries.
func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.ttl = ttl
	}
}

// WithClock overrides the time source, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.now = now
	}
}

func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		data: make(map[K]entry[V]),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) fresh(e entry[V]) bool {
	return c.ttl <= 0 || c.now().Sub(e.storedAt) < c.ttl
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	if !ok || !c.fresh(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

func (c *Cache[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]K, 0, len(c.data))
	for k, e := range c.data {
		if c.fresh(e) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	n := 0
	for _, e := range c.data {
		if c.fresh(e) {
			n++
		}
	}
	return n
}

func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[K]entry[V])
}
