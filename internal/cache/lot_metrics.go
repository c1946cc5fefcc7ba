// internal/cache/lot_metrics.go
package cache

import (
	"sync"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// LotMetricsCache is the single-slot memoization for the lot metrics
// aggregation. The record store is immutable for the lifetime of the
// process, so there is no TTL and no data-driven invalidation: the first
// computation is stored until an explicit Clear. The cache is owned by the
// service that fills it, never shared as hidden global state, which keeps
// tests deterministic (each test constructs its own).
type LotMetricsCache struct {
	mu      sync.RWMutex
	metrics map[string]domain.LotMetric
	filled  bool
}

func NewLotMetricsCache() *LotMetricsCache {
	return &LotMetricsCache{}
}

// Get returns the cached metrics and whether the slot is filled.
func (c *LotMetricsCache) Get() (map[string]domain.LotMetric, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics, c.filled
}

// Set fills the slot.
func (c *LotMetricsCache) Set(metrics map[string]domain.LotMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = metrics
	c.filled = true
}

// Clear empties the slot; the next Get reports a miss.
func (c *LotMetricsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = nil
	c.filled = false
}
