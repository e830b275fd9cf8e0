// Package cache is a thin process-wide wrapper over an in-memory TTL
// store. The singleton keeps the typed package-level getter usable from
// any layer without threading the instance through.
package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type memoryCache struct {
	store *cache.Cache
}

var (
	once     sync.Once
	instance Cache
)

// NewCache returns the process-wide Cache, creating it on first call
// with the given default expiration and cleanup interval. Later calls
// return the same instance regardless of arguments.
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	once.Do(func() {
		instance = &memoryCache{store: cache.New(defaultExpiration, cleanupInterval)}
	})
	return instance
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}

// GetFromCache reads a key from the singleton and asserts it to T. A
// missing key and a value of a different type both read as a miss.
func GetFromCache[T any](key string) (T, bool) {
	var zero T
	val, found := instance.Get(key)
	if !found {
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
