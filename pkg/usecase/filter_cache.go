package usecase

import (
	"sync"
	"time"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

const (
	// DefaultFilterCacheTTL is how long a resolved value list is served
	// without asking the gateway again
	DefaultFilterCacheTTL = 5 * time.Minute
)

type cachedFilterValues struct {
	values    []model.FilterValue
	expiresAt time.Time
}

// FilterCache keeps one resolved value list per filter field. Entries
// expire by time only; there is no size bound and no invalidation.
type FilterCache struct {
	ttl   time.Duration
	now   func() time.Time
	cache sync.Map
}

// NewFilterCache creates a cache whose entries live for ttl
func NewFilterCache(ttl time.Duration) *FilterCache {
	if ttl <= 0 {
		ttl = DefaultFilterCacheTTL
	}
	return &FilterCache{ttl: ttl, now: time.Now}
}

// Get returns the cached list while now < expiresAt
func (c *FilterCache) Get(field types.FieldID) ([]model.FilterValue, bool) {
	val, ok := c.cache.Load(field)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedFilterValues)
	if !c.now().Before(cached.expiresAt) {
		c.cache.CompareAndDelete(field, val)
		return nil, false
	}
	return cloneValues(cached.values), true
}

// Set stores the list stamped now + TTL
func (c *FilterCache) Set(field types.FieldID, values []model.FilterValue) {
	c.cache.Store(field, &cachedFilterValues{
		values:    cloneValues(values),
		expiresAt: c.now().Add(c.ttl),
	})
}

// ExpiresAt returns the expiry of an entry, for diagnostics
func (c *FilterCache) ExpiresAt(field types.FieldID) (time.Time, bool) {
	val, ok := c.cache.Load(field)
	if !ok {
		return time.Time{}, false
	}
	return val.(*cachedFilterValues).expiresAt, true
}

func cloneValues(values []model.FilterValue) []model.FilterValue {
	out := make([]model.FilterValue, len(values))
	copy(out, values)
	return out
}
