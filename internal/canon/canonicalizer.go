package canon

import (
	"context"
	"fmt"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// Canonicalizer adapts designs and raw line lists to an Oracle, with an
// optional Cache.
type Canonicalizer struct {
	oracle Oracle
	cache  *Cache
	calls  int64
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithCache memoises fingerprints in a cache of the given capacity.
// Zero or negative disables caching.
func WithCache(capacity int) Option {
	return func(c *Canonicalizer) {
		if capacity > 0 {
			c.cache = NewCache(capacity)
		}
	}
}

// New creates a Canonicalizer. A nil oracle selects NewRefiner().
func New(oracle Oracle, opts ...Option) *Canonicalizer {
	if oracle == nil {
		oracle = NewRefiner()
	}
	c := &Canonicalizer{oracle: oracle}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Design returns the fingerprint of d's incidence structure.
func (c *Canonicalizer) Design(ctx context.Context, d *design.Design) (Fingerprint, error) {
	var key string
	if c.cache != nil {
		lines := make([]design.Line, d.NumLines())
		for i := range lines {
			lines[i] = d.Line(i)
		}
		key = LinesKey(d.NumPoints(), lines)
		if f, ok := c.cache.Get(key); ok {
			return f, nil
		}
	}
	return c.compute(ctx, DesignGraph(d), key)
}

// Lines returns the fingerprint of the design with numPoints points and the
// given lines, without building a Design. The lines are not checked against
// the linear-space axiom.
func (c *Canonicalizer) Lines(ctx context.Context, numPoints int, lines []design.Line) (Fingerprint, error) {
	var key string
	if c.cache != nil {
		key = LinesKey(numPoints, lines)
		if f, ok := c.cache.Get(key); ok {
			return f, nil
		}
	}
	for _, l := range lines {
		for _, p := range l {
			if p < 0 || p >= numPoints {
				return "", fmt.Errorf("canon: point %d out of range [0,%d)", p, numPoints)
			}
		}
	}
	return c.compute(ctx, IncidenceGraph(numPoints, lines), key)
}

func (c *Canonicalizer) compute(ctx context.Context, g *Graph, key string) (Fingerprint, error) {
	c.calls++
	f, err := c.oracle.Canonicalize(ctx, g)
	if err != nil {
		return "", err
	}
	if c.cache != nil {
		c.cache.Put(key, f)
	}
	return f, nil
}

// Calls returns how many times the oracle was invoked.
func (c *Canonicalizer) Calls() int64 { return c.calls }

// Cache returns the cache, or nil when caching is disabled.
func (c *Canonicalizer) Cache() *Cache { return c.cache }
