package dedupe

import (
	"sync"
	"time"
)

type record struct {
	id string
	at time.Time
}

// Cache remembers recently ingested article IDs so duplicate feed entries
// are dropped before they hit the store. Entries expire after the ttl and
// the oldest are evicted once capacity is exceeded.
type Cache struct {
	mu       sync.Mutex
	byID     map[string]time.Time
	queue    []record
	capacity int
	ttl      time.Duration
}

// NewCache creates a cache with the provided capacity and ttl.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		byID:     make(map[string]time.Time, capacity),
		queue:    make([]record, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Observe records the article ID and reports whether it was already present
// inside the ttl window. The check and the mark happen under one lock so
// two observations of the same ID cannot both come back fresh.
func (c *Cache) Observe(id string) (duplicate bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if at, ok := c.byID[id]; ok && now.Sub(at) <= c.ttl {
		return true
	}

	c.byID[id] = now
	c.queue = append(c.queue, record{id: id, at: now})
	c.evict(now)
	return false
}

func (c *Cache) evict(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.queue) > 0 && (len(c.byID) > c.capacity || c.queue[0].at.Before(cutoff)) {
		oldest := c.queue[0]
		c.queue = c.queue[1:]

		if at, ok := c.byID[oldest.id]; ok && at.Equal(oldest.at) {
			delete(c.byID, oldest.id)
		}
	}
}
