package memcache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1)
	c.Set("b", 2)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	val, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, val)

	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	c := New(
		WithTTL[string, int](10*time.Second),
		WithClock[string, int](func() time.Time { return clock() }),
	)

	c.Set("a", 1)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	// just inside the window
	now = now.Add(9 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	// expired
	now = now.Add(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Now()
	c := New(WithClock[string, int](func() time.Time { return now.Add(1000 * time.Hour) }))

	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.True(t, ok)
}

func TestCache_SetRefreshesExpiry(t *testing.T) {
	now := time.Now()
	c := New(
		WithTTL[string, int](10*time.Second),
		WithClock[string, int](func() time.Time { return now }),
	)

	c.Set("a", 1)
	now = now.Add(8 * time.Second)
	c.Set("a", 2)
	now = now.Add(8 * time.Second)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, val)
}

func TestCache_Delete(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_Keys(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1)
	c.Set("b", 2)

	keys := c.Keys()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "a")
	assert.Contains(t, keys, "b")
}

func TestCache_Clear(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(i, i*2)
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 100, c.Len())

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, ok := c.Get(i)
			assert.True(t, ok)
			assert.Equal(t, i*2, val)
		}(i)
	}

	wg.Wait()
}
