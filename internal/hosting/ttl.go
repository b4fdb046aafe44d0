package hosting

import (
	"sync"
	"time"
)

// ttlCache is a small in-process cache with lazy expiration on get.
type ttlCache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]cached[V]
}

type cached[V any] struct {
	val V
	exp time.Time
}

func newTTLCache[K comparable, V any]() *ttlCache[K, V] {
	return &ttlCache[K, V]{data: make(map[K]cached[V])}
}

// get returns the value and true if present and not expired.
func (c *ttlCache[K, V]) get(k K) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[k]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (c *ttlCache[K, V]) set(k K, v V, ttl time.Duration) {
	c.mu.Lock()
	c.data[k] = cached[V]{val: v, exp: time.Now().Add(ttl)}
	c.mu.Unlock()
}
