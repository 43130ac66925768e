package monitoring

import (
	"context"
	"errors"

	"github.com/alchemorsel/kitchen/internal/ports/outbound"
)

// InstrumentedCache counts hits and misses of a cache
type InstrumentedCache struct {
	outbound.CacheRepository
	name    string
	metrics *MetricsCollector
}

var _ outbound.CacheRepository = (*InstrumentedCache)(nil)

// InstrumentCache wraps cache so every Get is recorded under name
func InstrumentCache(cache outbound.CacheRepository, name string, metrics *MetricsCollector) *InstrumentedCache {
	return &InstrumentedCache{CacheRepository: cache, name: name, metrics: metrics}
}

// Get records the lookup result. Errors other than a miss are not counted.
func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.CacheRepository.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.RecordCacheLookup(c.name, true)
	case errors.Is(err, outbound.ErrCacheMiss):
		c.metrics.RecordCacheLookup(c.name, false)
	}
	return value, err
}

