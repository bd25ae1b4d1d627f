// Package evalcache provides the concurrent write-once evaluation cache
// shared between the scheduler's workers and the classifier.
package evalcache

import "sync"

// Record is the cached evaluation of one position. A nil Score means the
// evaluation failed and is unavailable; downstream stages must tolerate
// that.
type Record struct {
	// Score is the centipawn score from White's perspective.
	Score *int

	// BestMove is the engine's preferred move in UCI notation.
	BestMove string
}

// Available reports whether the record carries a usable score.
func (r Record) Available() bool {
	return r.Score != nil
}

// Cache maps position fingerprints to evaluation records. Keys are
// write-once: the first writer wins and later writes are dropped, which
// makes concurrent workers racing on a transposed position idempotent.
// Safe for concurrent use.
type Cache struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		recs: make(map[string]Record),
	}
}

// Put stores the record for a fingerprint unless one is already present.
// It reports whether the record was stored.
func (c *Cache) Put(fingerprint string, r Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.recs[fingerprint]; ok {
		return false
	}
	c.recs[fingerprint] = r
	return true
}

// Get returns the record for a fingerprint.
func (c *Cache) Get(fingerprint string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recs[fingerprint]
	return r, ok
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recs)
}
