package canon

import (
	"encoding/binary"
	"slices"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// Cache memoises fingerprints by the exact (num_points, sorted line
// multiset) key. It keeps two generations: when the current one fills up it
// becomes the previous one and the oldest generation is dropped, so memory
// stays bounded at twice the capacity.
//
// Not safe for concurrent use.
type Cache struct {
	capacity   int
	cur, prev  map[string]Fingerprint
	hits, miss int64
}

// NewCache creates a cache holding up to capacity entries per generation.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: max(capacity, 1),
		cur:      make(map[string]Fingerprint),
	}
}

// Get returns the memoised fingerprint for key.
func (c *Cache) Get(key string) (Fingerprint, bool) {
	if f, ok := c.cur[key]; ok {
		c.hits++
		return f, true
	}
	if f, ok := c.prev[key]; ok {
		c.hits++
		c.Put(key, f)
		return f, true
	}
	c.miss++
	return "", false
}

// Put stores a fingerprint.
func (c *Cache) Put(key string, f Fingerprint) {
	if len(c.cur) >= c.capacity {
		c.prev = c.cur
		c.cur = make(map[string]Fingerprint, c.capacity)
	}
	c.cur[key] = f
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) { return c.hits, c.miss }

// Len returns the number of entries across both generations.
func (c *Cache) Len() int { return len(c.cur) + len(c.prev) }

// LinesKey builds the cache key for a line multiset. Line order does not
// matter; point order inside a line does not matter.
func LinesKey(numPoints int, lines []design.Line) string {
	sorted := make([]design.Line, len(lines))
	for i, l := range lines {
		sorted[i] = design.NewLine(l...)
	}
	slices.SortFunc(sorted, func(a, b design.Line) int { return slices.Compare(a, b) })

	buf := binary.AppendUvarint(nil, uint64(numPoints))
	for _, l := range sorted {
		buf = binary.AppendUvarint(buf, uint64(len(l)))
		for _, p := range l {
			buf = binary.AppendUvarint(buf, uint64(p))
		}
	}
	return string(buf)
}
