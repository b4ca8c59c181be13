package cache

import (
	"strings"
	"sync"
	"time"
)

// Default TTLs: trip queries churn quickly, reference lists barely move.
const (
	TripTTL = 30 * time.Second
	ListTTL = 5 * time.Minute
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a thread-safe in-memory key/value store with per-entry TTL.
// Expiry is checked lazily on Get; a background sweep evicts leftovers.
// There is no size bound.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]entry
	defaultTTL  time.Duration
	stopCleanup chan struct{}
}

// New creates a cache and starts its cleanup sweep.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	c := &Cache{
		entries:     make(map[string]entry),
		defaultTTL:  defaultTTL,
		stopCleanup: make(chan struct{}),
	}
	go c.cleanupLoop(cleanupInterval)
	return c
}

// Set stores value under key with the given TTL. A zero or negative ttl
// falls back to the cache's default.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Get returns the stored value, or nil and false if the key is absent or
// expired. Expired entries are evicted on the spot.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return e.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidatePrefix removes every key that starts with prefix. Write paths
// use this where the key encodes many filter combinations ("trips:").
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Clear drops everything. Tests use it to reset state between runs.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the cleanup sweep.
func (c *Cache) Stop() {
	close(c.stopCleanup)
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Cache) deleteExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// API is the process-wide cache shared by the REST handlers. Init wires it
// with the configured TTL before the router starts serving.
var API *Cache

// Init builds the shared instance. The cleanup sweep runs once a minute,
// matching the cache's highest-churn TTL.
func Init(defaultTTL time.Duration) {
	API = New(defaultTTL, time.Minute)
}
