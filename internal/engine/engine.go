package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/cover"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// DefaultCacheSize is the per-generation capacity of the fingerprint cache
// an Engine creates when no Canonicalizer is supplied.
const DefaultCacheSize = 1 << 16

// DefaultMaxLen returns the longest line a non-trivial linear space on n
// points can have: a point off a line of length k meets its k points on
// distinct lines of at least three points, so n >= 2k+1.
func DefaultMaxLen(n int) int {
	return (n - 1) / 2
}

// Engine runs seed searches and completions.
//
// An Engine is not safe for concurrent use: searches share the line-table
// memo and the fingerprint cache. Every operation is single-threaded and
// deterministic given deterministic oracles.
type Engine struct {
	canon    *canon.Canonicalizer
	covers   cover.Oracle
	observer Observer
	clock    *Clock
	maxSteps int
	tables   map[tableKey]*design.LineTable
}

type tableKey struct{ n, maxLen int }

// Result is one design produced by a search operation.
type Result struct {
	Design      *design.Design
	Fingerprint canon.Fingerprint
	// Seq orders results across every operation of the Engine.
	Seq int64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCanonicalizer sets the fingerprint source.
func WithCanonicalizer(c *canon.Canonicalizer) EngineOption {
	return func(e *Engine) {
		e.canon = c
	}
}

// WithCoverOracle sets the exact-cover oracle.
func WithCoverOracle(o cover.Oracle) EngineOption {
	return func(e *Engine) {
		e.covers = o
	}
}

// WithObserver receives search events.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithMaxSteps caps the steps of each operation. Zero means unlimited.
func WithMaxSteps(maxSteps int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = maxSteps
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(c *Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine. Without options it uses a cached canon.Refiner
// and cover.AlgorithmX.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		observer: NoopObserver{},
		clock:    NewClock(),
		tables:   make(map[tableKey]*design.LineTable),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.canon == nil {
		e.canon = canon.New(nil, canon.WithCache(DefaultCacheSize))
	}
	if e.covers == nil {
		e.covers = cover.NewAlgorithmX()
	}
	return e
}

// Clock returns the result clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Canonicalizer returns the fingerprint source.
func (e *Engine) Canonicalizer() *canon.Canonicalizer { return e.canon }

// LineTable returns the memoised table of lines on n points up to maxLen.
func (e *Engine) LineTable(n, maxLen int) *design.LineTable {
	k := tableKey{n, maxLen}
	t, ok := e.tables[k]
	if !ok {
		t = design.NewLineTable(n, maxLen)
		e.tables[k] = t
		total := 0
		for l := 3; l <= maxLen; l++ {
			total += len(t.WithLen(l))
		}
		slog.Debug("line table built", "n", n, "max_len", maxLen, "lines", total)
	}
	return t
}

// Fingerprint returns the fingerprint of d.
func (e *Engine) Fingerprint(ctx context.Context, d *design.Design) (canon.Fingerprint, error) {
	return e.fingerprint(ctx, PhaseComplete, d)
}

func (e *Engine) fingerprint(ctx context.Context, phase Phase, d *design.Design) (canon.Fingerprint, error) {
	f, err := e.canon.Design(ctx, d)
	if err != nil {
		if isContextErr(err) {
			return "", err
		}
		return "", NewOracleError(phase, d.NumPoints(), "canon", err)
	}
	e.observer.FingerprintComputed(phase)
	return f, nil
}

func (e *Engine) record(phase Phase, d *design.Design, f canon.Fingerprint) Result {
	e.observer.ResultRecorded(phase)
	return Result{Design: d, Fingerprint: f, Seq: e.clock.Next()}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
