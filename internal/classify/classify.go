package classify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
)

// MinPoints is the smallest point count with a line of three points.
const MinPoints = 3

// Regime names the minimum-line-length strategy that produced a design.
type Regime string

const (
	RegimeMin3     Regime = "min3"
	RegimeMin4Plus Regime = "min4plus"
)

// Found is one classified design.
type Found struct {
	engine.Result
	NumPoints int
	Regime    Regime
}

// MinLineLen returns the length of the design's shortest line.
func (f Found) MinLineLen() int { return f.Design.MinLineLen() }

// Sink persists the designs found for one point count.
type Sink interface {
	Record(ctx context.Context, n int, found []Found) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, n int, found []Found) error

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, n int, found []Found) error { return f(ctx, n, found) }

// Sinks fans out to several sinks in order, stopping at the first error.
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, n int, found []Found) error {
		for _, s := range sinks {
			if err := s.Record(ctx, n, found); err != nil {
				return err
			}
		}
		return nil
	})
}

// Classifier runs both regimes for a point count.
type Classifier struct {
	engine  *engine.Engine
	maxLen  func(n int) int
	regimes []Regime
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxLineLen fixes the longest line length tried. Zero keeps
// engine.DefaultMaxLen.
func WithMaxLineLen(maxLen int) Option {
	return func(c *Classifier) {
		if maxLen > 0 {
			c.maxLen = func(n int) int { return min(maxLen, n) }
		}
	}
}

// WithRegimes restricts Classify to the given regimes, in the order given.
// With no regimes both run, min3 first.
func WithRegimes(regimes ...Regime) Option {
	return func(c *Classifier) {
		if len(regimes) > 0 {
			c.regimes = regimes
		}
	}
}

// New creates a Classifier on top of e.
func New(e *engine.Engine, opts ...Option) *Classifier {
	c := &Classifier{
		engine:  e,
		maxLen:  engine.DefaultMaxLen,
		regimes: []Regime{RegimeMin3, RegimeMin4Plus},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Min3 returns the designs on n points whose shortest line has three
// points.
func (c *Classifier) Min3(ctx context.Context, n int) ([]Found, error) {
	maxLen := c.maxLen(n)
	seeds, err := c.engine.SeedSearch(ctx, engine.SeedParams{
		NumPoints:  n,
		MaxLen:     maxLen,
		InitialLen: 3,
		PtUpTo:     2,
	})
	if err != nil {
		return nil, fmt.Errorf("min3 seeds n=%d: %w", n, err)
	}

	lengths := engine.LengthRange{Min: 3, Max: maxLen}
	satSeen := canon.NewFingerprintSet()
	var saturated []engine.Result
	for _, s := range seeds {
		rs, err := c.engine.EnumerateSaturations(ctx, s.Design, 2, lengths, satSeen)
		if err != nil {
			return nil, fmt.Errorf("min3 saturate n=%d: %w", n, err)
		}
		saturated = append(saturated, rs...)
	}

	fullSeen := canon.NewFingerprintSet()
	var found []Found
	for _, s := range saturated {
		rs, err := c.engine.AllFullCompletions(ctx, s.Design, lengths, fullSeen)
		if err != nil {
			return nil, fmt.Errorf("min3 complete n=%d: %w", n, err)
		}
		found = appendFound(found, n, RegimeMin3, rs)
	}

	slog.Debug("min3 regime done",
		"n", n,
		"seeds", len(seeds),
		"saturated", len(saturated),
		"designs", len(found),
	)
	return found, nil
}

// Min4Plus returns the designs on n points whose lines all have at least
// four points. One dedup set spans every seed length m, since a design
// with lines of several lengths is reachable from more than one m.
func (c *Classifier) Min4Plus(ctx context.Context, n int) ([]Found, error) {
	maxLen := c.maxLen(n)
	seen := canon.NewFingerprintSet()
	lengths := engine.LengthRange{Min: 4, Max: maxLen}

	var found []Found
	for m := 4; m <= n/2; m++ {
		seeds, err := c.engine.SeedSearch(ctx, engine.SeedParams{
			NumPoints:  n,
			MaxLen:     maxLen,
			InitialLen: m,
			PtUpTo:     m,
		})
		if err != nil {
			return nil, fmt.Errorf("min4+ seeds n=%d m=%d: %w", n, m, err)
		}
		for _, s := range seeds {
			rs, err := c.engine.AllFullCompletions(ctx, s.Design, lengths, seen)
			if err != nil {
				return nil, fmt.Errorf("min4+ complete n=%d m=%d: %w", n, m, err)
			}
			found = appendFound(found, n, RegimeMin4Plus, rs)
		}
		slog.Debug("min4+ seed length done", "n", n, "m", m, "seeds", len(seeds), "designs", len(found))
	}
	return found, nil
}

// Classify returns the configured regimes for n, by default both with
// min3 first.
func (c *Classifier) Classify(ctx context.Context, n int) ([]Found, error) {
	if n < MinPoints {
		return nil, fmt.Errorf("classify: %d points, need at least %d", n, MinPoints)
	}
	var found []Found
	for _, r := range c.regimes {
		var rs []Found
		var err error
		switch r {
		case RegimeMin3:
			rs, err = c.Min3(ctx, n)
		case RegimeMin4Plus:
			rs, err = c.Min4Plus(ctx, n)
		default:
			return nil, fmt.Errorf("classify: unknown regime %q", r)
		}
		if err != nil {
			return nil, err
		}
		found = append(found, rs...)
	}
	c.logFound(ctx, n, found)
	return found, nil
}

// logFound writes one debug line per design plus the fingerprint cache
// counters.
func (c *Classifier) logFound(ctx context.Context, n int, found []Found) {
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, f := range found {
		slog.Debug("design found",
			"n", n,
			"regime", f.Regime,
			"id", f.Fingerprint.Short(),
			"lines", f.Design.NumLines(),
			"min_line_len", f.MinLineLen(),
		)
	}
	cn := c.engine.Canonicalizer()
	attrs := []any{"n", n, "oracle_calls", cn.Calls()}
	if cache := cn.Cache(); cache != nil {
		hits, misses := cache.Stats()
		attrs = append(attrs, "cache_hits", hits, "cache_misses", misses, "cache_len", cache.Len())
	}
	slog.Debug("fingerprint cache", attrs...)
}

// Summary reports a ClassifyRange run.
type Summary struct {
	// Counts maps point count to number of designs.
	Counts  map[int]int
	Elapsed time.Duration
}

// ClassifyRange classifies every point count in [from, to] and hands each
// result list to sink before moving on.
func (c *Classifier) ClassifyRange(ctx context.Context, from, to int, sink Sink) (Summary, error) {
	if from < MinPoints || to < from {
		return Summary{}, fmt.Errorf("classify: invalid point range [%d, %d]", from, to)
	}
	start := time.Now()
	sum := Summary{Counts: make(map[int]int)}
	for n := from; n <= to; n++ {
		nStart := time.Now()
		found, err := c.Classify(ctx, n)
		if err != nil {
			return sum, err
		}
		slog.Info("classified point count",
			"n", n,
			"designs", len(found),
			"elapsed", time.Since(nStart),
		)
		if sink != nil {
			if err := sink.Record(ctx, n, found); err != nil {
				return sum, fmt.Errorf("record n=%d: %w", n, err)
			}
		}
		sum.Counts[n] = len(found)
	}
	sum.Elapsed = time.Since(start)
	return sum, nil
}

func appendFound(found []Found, n int, regime Regime, rs []engine.Result) []Found {
	for _, r := range rs {
		found = append(found, Found{Result: r, NumPoints: n, Regime: regime})
	}
	return found
}
