package cache

import (
	"sync"
	"time"

	"inventory-server/services"
)

type entry struct {
	rec     *services.Recommendation
	expires time.Time
}

// RecommendationCache keeps the last provider answer per drawer for a fixed
// TTL, so repeated requests against an unchanged drawer skip the round trip.
// Any object mutation on a drawer must invalidate its entry.
type RecommendationCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uint]entry
}

func NewRecommendationCache(ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		ttl:     ttl,
		entries: make(map[uint]entry),
	}
}

// Get returns the cached recommendation for a drawer if it has not expired.
func (c *RecommendationCache) Get(drawerID uint) (*services.Recommendation, bool) {
	c.mu.RLock()
	e, ok := c.entries[drawerID]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.rec, true
}

// Put stores a fresh recommendation for a drawer.
func (c *RecommendationCache) Put(drawerID uint, rec *services.Recommendation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[drawerID] = entry{rec: rec, expires: time.Now().Add(c.ttl)}
}

// Invalidate drops a drawer's entry after its contents changed.
func (c *RecommendationCache) Invalidate(drawerID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, drawerID)
}

// Clear drops every entry.
func (c *RecommendationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint]entry)
}

// Stats reports the cache's current shape.
func (c *RecommendationCache) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	live := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expires) {
			live++
		}
	}
	return map[string]any{
		"total_entries": len(c.entries),
		"live_entries":  live,
		"ttl_seconds":   int(c.ttl.Seconds()),
	}
}
