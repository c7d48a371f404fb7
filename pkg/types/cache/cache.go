package cache

// Cache is a generic key/value store with entry expiry. Get must not return
// entries older than the cache's TTL.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Keys() []K
	Len() int
	Clear()
}
