// Package cache implements a small in-process TTL cache.
//
// The budget engine uses it to memoize computed spend maps between requests.
// Entries are keyed by strings with a "scope|detail" shape so that all
// entries for one scope can be dropped at once after a mutation.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache is a TTL cache for values of type T.
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[T]
}

type entry[T any] struct {
	value   T
	expires time.Time
}

// New returns a cache whose entries expire after ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Key builds a cache key from a scope and a detail part.
func Key(scope, detail string) string {
	return scope + "|" + detail
}

// Get retrieves a value. The second return value reports whether a live
// entry was found.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores a value.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:   value,
		expires: time.Now().Add(c.ttl),
	}
}

// Invalidate drops all entries for a scope.
func (c *Cache[T]) Invalidate(scope string) {
	prefix := scope + "|"

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Size returns the current number of entries, including expired ones that
// have not been collected yet.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *Cache[T]) CleanExpired() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			cleaned++
		}
	}

	return cleaned
}
