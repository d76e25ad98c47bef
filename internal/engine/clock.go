package engine

import "sync/atomic"

// Clock is a monotonic logical clock. Every result an Engine records is
// stamped with the next value, which gives results a stable total order
// that does not depend on wall time.
//
// Clock is safe for concurrent use, though an Engine only advances it from
// the goroutine running a search.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at start. Used to continue numbering
// after the last sequence number already in the catalog.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
