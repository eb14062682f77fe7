package phonetics

import "sync"

// VectorCache memoizes primitive vectors by (normalized name, extractor
// version). Entries are immutable once written, so concurrent readers
// never need coordination; two goroutines racing to compute the same key
// produce identical values and the last write is equivalent to the first.
type VectorCache struct {
	mu      sync.RWMutex
	entries map[string]*NamePrimitiveVector
	version string

	extractor *Extractor
}

// NewVectorCache creates a cache bound to the current extractor version
func NewVectorCache() *VectorCache {
	return &VectorCache{
		entries:   make(map[string]*NamePrimitiveVector),
		version:   ExtractorVersion,
		extractor: NewExtractor(),
	}
}

// Get returns the cached vector for name, extracting and storing it on
// first use.
func (c *VectorCache) Get(name string) *NamePrimitiveVector {
	key := Normalize(name)

	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	v := c.extractor.Extract(name)

	c.mu.Lock()
	// Another goroutine may have raced us here; either value is identical.
	c.entries[key] = v
	c.mu.Unlock()
	return v
}

// Len returns the number of cached vectors
func (c *VectorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// InvalidateIfStale drops every entry when the running extractor version
// differs from the one the cache was built for. All entries for a version
// are invalidated together, never one at a time.
func (c *VectorCache) InvalidateIfStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != ExtractorVersion {
		c.entries = make(map[string]*NamePrimitiveVector)
		c.version = ExtractorVersion
	}
}
