package loader

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/khankhulgun/mapstyle/style"
)

// Cached keeps successfully loaded documents for a while, keyed by locator.
// Failed loads are not cached. Callers always get their own copy.
type Cached struct {
	inner style.Loader
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCached wraps inner with a ristretto cache holding up to maxDocs
// documents for ttl each.
func NewCached(inner style.Loader, maxDocs int64, ttl time.Duration) (*Cached, error) {
	if maxDocs <= 0 {
		maxDocs = 256
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxDocs * 10, // number of keys to track frequency of
		MaxCost:     maxDocs,      // one unit per document
		BufferItems: 64,           // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache, ttl: ttl}, nil
}

// Load returns the cached document for locator or loads it through the
// wrapped loader.
func (c *Cached) Load(locator string) (map[string]any, error) {
	if hit, found := c.cache.Get(locator); found {
		if m, ok := hit.(map[string]any); ok {
			return copyMap(m), nil
		}
	}

	m, err := c.inner.Load(locator)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(locator, copyMap(m), 1, c.ttl)
	c.cache.Wait()
	return m, nil
}

// Close stops the cache's background goroutines.
func (c *Cached) Close() {
	c.cache.Close()
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = copyValue(it)
		}
		return out
	default:
		return v
	}
}
