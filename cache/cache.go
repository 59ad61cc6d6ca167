package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a size-bounded, TTL-aware cache keyed by string.
type Cache[T any] struct {
	impl *ristretto.Cache[string, T]
	name string
}

// New creates a cache holding up to maxCost worth of entries as measured by cost.
func New[T any](name string, maxCost int64, cost func(T) int64) (*Cache[T], error) {
	impl, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters:        max(maxCost/10, 1000),
		MaxCost:            maxCost,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
		Cost:               cost,
	})
	if err != nil {
		return nil, err
	}
	return &Cache[T]{impl: impl, name: name}, nil
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.impl.Get(key)
}

// Set stores value for ttl. A cost of 0 lets the cache's cost function decide.
// Writes are applied asynchronously; call Wait to observe them immediately.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) bool {
	return c.impl.SetWithTTL(key, value, 0, ttl)
}

func (c *Cache[T]) Del(key string) {
	c.impl.Del(key)
}

func (c *Cache[T]) Clear() {
	c.impl.Clear()
}

func (c *Cache[T]) Wait() {
	c.impl.Wait()
}

func (c *Cache[T]) Close() {
	c.impl.Close()
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Name     string  `json:"name"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRate  float64 `json:"hitRate"`
	Items    int64   `json:"items"`
	CostUsed int64   `json:"costUsed"`
	Rejected uint64  `json:"rejected"`
}

func (c *Cache[T]) Stats() Stats {
	m := c.impl.Metrics
	s := Stats{
		Name:     c.name,
		Hits:     m.Hits(),
		Misses:   m.Misses(),
		Items:    int64(m.KeysAdded() - m.KeysEvicted()),
		CostUsed: int64(m.CostAdded() - m.CostEvicted()),
		Rejected: m.SetsRejected(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
