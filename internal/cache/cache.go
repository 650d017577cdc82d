package cache

import (
	"sync"
	"time"
)

// ============================================================================
// CACHE SERVICE - IN-MEMORY CACHING WITH TTL
// ============================================================================
// Thread-safe cache with automatic expiration, used to keep the transit
// network reference data (stops, routes, transfers) and recently planned
// journeys out of the database hot path.
//
// Usage:
//   cache := NewCache(5 * time.Minute, 10 * time.Minute)
//   cache.Set("stop:"+id, stop)
//   if data, found := cache.Get("stop:" + id); found {
//       return data
//   }

// Item is a cached value with an expiration timestamp.
type Item struct {
	Value      interface{}
	Expiration int64 // Unix nano timestamp, 0 = never expires
}

// Cache is a thread-safe key-value store with TTL.
type Cache struct {
	items             map[string]Item
	mu                sync.RWMutex
	defaultExpiration time.Duration
	cleanupInterval   time.Duration
	stopCleanup       chan bool
}

// NewCache creates a cache with a default TTL. cleanupInterval controls
// how often expired items are swept.
func NewCache(defaultExpiration, cleanupInterval time.Duration) *Cache {
	cache := &Cache{
		items:             make(map[string]Item),
		defaultExpiration: defaultExpiration,
		cleanupInterval:   cleanupInterval,
		stopCleanup:       make(chan bool),
	}

	go cache.startCleanupTimer()

	return cache
}

// Set stores a value with the default expiration.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultExpiration)
}

// SetWithTTL stores a value with a specific expiration.
func (c *Cache) SetWithTTL(key string, value interface{}, duration time.Duration) {
	var expiration int64

	if duration > 0 {
		expiration = time.Now().Add(duration).UnixNano()
	}

	c.mu.Lock()
	c.items[key] = Item{
		Value:      value,
		Expiration: expiration,
	}
	c.mu.Unlock()
}

// Get retrieves a value. Returns (nil, false) when missing or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}

	if item.Expiration > 0 && time.Now().UnixNano() > item.Expiration {
		c.Delete(key)
		return nil, false
	}

	return item.Value, true
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// DeletePrefix removes every key starting with the given prefix.
// Useful to invalidate groups (e.g. "plan:" drops all cached journeys).
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key := range c.items {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.items, key)
			count++
		}
	}
	return count
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]Item)
	c.mu.Unlock()
}

// Count returns the number of stored items (expired included).
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats summarizes cache state for the monitoring endpoint.
type Stats struct {
	TotalItems   int
	ExpiredItems int
	ValidItems   int
	MemoryEstMB  float64 // rough estimate
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalItems: len(c.items),
	}

	now := time.Now().UnixNano()
	for _, item := range c.items {
		if item.Expiration > 0 && now > item.Expiration {
			stats.ExpiredItems++
		} else {
			stats.ValidItems++
		}
	}

	// Very rough: ~1KB per item on average
	stats.MemoryEstMB = float64(stats.TotalItems) * 1.0 / 1024.0

	return stats
}

func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.cleanupInterval)
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
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, item := range c.items {
		if item.Expiration > 0 && now > item.Expiration {
			delete(c.items, key)
		}
	}
}

// Stop halts the cleanup goroutine.
func (c *Cache) Stop() {
	c.stopCleanup <- true
}

// ============================================================================
// CACHE PRESETS
// ============================================================================

var (
	// StopsCache - individual stops by id (TTL: 10 minutes).
	// Reference data, mutated only by the seeding tooling.
	StopsCache *Cache

	// RoutesCache - routes and ordered route-stop sequences (TTL: 10 minutes).
	RoutesCache *Cache

	// TransfersCache - the full walking-transfer list (TTL: 10 minutes).
	TransfersCache *Cache

	// PlanCache - recently planned journeys keyed by rounded endpoints and
	// preference (TTL: 1 minute). Short-lived: plans are cheap to recompute
	// once the graph snapshot exists.
	PlanCache *Cache
)

// InitCaches initializes all cache presets.
func InitCaches() {
	StopsCache = NewCache(10*time.Minute, 15*time.Minute)
	RoutesCache = NewCache(10*time.Minute, 15*time.Minute)
	TransfersCache = NewCache(10*time.Minute, 15*time.Minute)
	PlanCache = NewCache(1*time.Minute, 5*time.Minute)
}

// StopCaches stops all cache cleanup goroutines.
func StopCaches() {
	if StopsCache != nil {
		StopsCache.Stop()
	}
	if RoutesCache != nil {
		RoutesCache.Stop()
	}
	if TransfersCache != nil {
		TransfersCache.Stop()
	}
	if PlanCache != nil {
		PlanCache.Stop()
	}
}

// ClearAllCaches empties every preset cache. Call after re-seeding the
// network so no reader observes stale reference data.
func ClearAllCaches() {
	if StopsCache != nil {
		StopsCache.Clear()
	}
	if RoutesCache != nil {
		RoutesCache.Clear()
	}
	if TransfersCache != nil {
		TransfersCache.Clear()
	}
	if PlanCache != nil {
		PlanCache.Clear()
	}
}

// GetAllCacheStats returns statistics for every preset cache.
func GetAllCacheStats() map[string]Stats {
	stats := make(map[string]Stats)

	if StopsCache != nil {
		stats["stops"] = StopsCache.GetStats()
	}
	if RoutesCache != nil {
		stats["routes"] = RoutesCache.GetStats()
	}
	if TransfersCache != nil {
		stats["transfers"] = TransfersCache.GetStats()
	}
	if PlanCache != nil {
		stats["plans"] = PlanCache.GetStats()
	}

	return stats
}
