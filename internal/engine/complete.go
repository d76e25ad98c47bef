package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/cover"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// Pair is an unordered pair of points with A < B.
type Pair struct{ A, B int }

// LengthRange bounds the lines a completion may add.
type LengthRange struct {
	Min int
	Max int
}

func (r LengthRange) validate(n int) error {
	if r.Min < 3 {
		return fmt.Errorf("completion: minimum line length %d below 3", r.Min)
	}
	if r.Max > n {
		return fmt.Errorf("completion: maximum line length %d above %d points", r.Max, n)
	}
	return nil
}

// EnumerateSaturations enumerates every way to add lines through p, with
// lengths in lengths, so that p shares a line with every other point. Each
// resulting design whose fingerprint is not yet in seen is added to seen
// and returned.
//
// d is not modified. A point that is already saturated yields d itself
// (as a copy) when its fingerprint is new.
func (e *Engine) EnumerateSaturations(ctx context.Context, d *design.Design, p int, lengths LengthRange, seen *canon.FingerprintSet) ([]Result, error) {
	n := d.NumPoints()
	if p < 0 || p >= n {
		return nil, fmt.Errorf("saturate: point %d out of range [0,%d)", p, n)
	}
	if err := lengths.validate(n); err != nil {
		return nil, err
	}

	universe := d.Unpaired(p)
	var candidates []design.Line
	// Lines through p are p plus a pairwise-unpaired set drawn from the
	// points p still misses.
	addableLines(d, universe, lengths.Min-1, lengths.Max-1, func(rest []int) {
		candidates = append(candidates, design.NewLine(append([]int{p}, rest...)...))
	})

	adapter := cover.NewAdapter(e.covers, func(l design.Line) []int { return l.Without(p) })
	return e.complete(ctx, PhaseSaturate, d, seen, adapter.Solve(ctx, universe, candidates))
}

// AllFullCompletions enumerates every way to add lines, with lengths in
// lengths, so that every pair of points shares exactly one line. Each
// resulting design whose fingerprint is not yet in seen is added to seen
// and returned.
//
// The universe is every pair not yet on a line. d is not modified.
func (e *Engine) AllFullCompletions(ctx context.Context, d *design.Design, lengths LengthRange, seen *canon.FingerprintSet) ([]Result, error) {
	n := d.NumPoints()
	if err := lengths.validate(n); err != nil {
		return nil, err
	}

	var open []int
	for q := 0; q < n; q++ {
		if !d.IsSaturated(q) {
			open = append(open, q)
		}
	}
	universe := uncoveredPairs(d, open)
	var candidates []design.Line
	addableLines(d, open, lengths.Min, lengths.Max, func(pts []int) {
		candidates = append(candidates, design.NewLine(pts...))
	})

	adapter := cover.NewAdapter(e.covers, linePairs)
	return e.complete(ctx, PhaseComplete, d, seen, adapter.Solve(ctx, universe, candidates))
}

// complete consumes covers, applying each to a copy of d.
func (e *Engine) complete(ctx context.Context, phase Phase, d *design.Design, seen *canon.FingerprintSet, covers iter.Seq2[[]design.Line, error]) ([]Result, error) {
	start := time.Now()
	results, err := e.consume(ctx, phase, d, seen, covers)
	e.observer.SearchFinished(phase, len(results), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) consume(ctx context.Context, phase Phase, d *design.Design, seen *canon.FingerprintSet, covers iter.Seq2[[]design.Line, error]) ([]Result, error) {
	n := d.NumPoints()
	quota := NewQuotaEnforcer(e.maxSteps)
	prog := newProgress(phase, n)
	var results []Result

	for lines, err := range covers {
		if err != nil {
			if isContextErr(err) {
				return nil, err
			}
			return nil, NewOracleError(phase, n, "cover", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := quota.Check(phase); err != nil {
			return nil, NewQuotaError(phase, n, err.(*StepsExceededError))
		}
		e.observer.CoverFound(phase)
		prog.step(0, len(results), d.NumLines()+len(lines))

		out, err := withLines(d, lines)
		if err != nil {
			// Candidates are filtered by CanAdd and covers are disjoint,
			// so this is a defect in candidate construction.
			slog.Error("dropping cover that breaks the linear-space axiom",
				"phase", phase,
				"n", n,
				"error", err,
			)
			continue
		}
		f, err := e.fingerprint(ctx, phase, out)
		if err != nil {
			return nil, err
		}
		if seen.Add(f) {
			results = append(results, e.record(phase, out, f))
		}
	}
	return results, nil
}

func withLines(d *design.Design, lines []design.Line) (*design.Design, error) {
	out := d.Clone()
	for _, l := range lines {
		if err := out.AddLine(l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// addableLines calls fn with every subset of pool (ascending) whose size
// lies in [minK, maxK] and whose pairs are all uncovered in d. Subsets are
// produced depth-first in lexicographic order. fn must not retain its
// argument.
func addableLines(d *design.Design, pool []int, minK, maxK int, fn func([]int)) {
	// The empty subset is never a line.
	minK = max(minK, 1)
	if maxK < minK {
		return
	}
	cur := make([]int, 0, maxK)
	var extend func(from int)
	extend = func(from int) {
		if len(cur) >= minK {
			fn(cur)
		}
		if len(cur) == maxK {
			return
		}
		for i := from; i < len(pool); i++ {
			q := pool[i]
			ok := true
			for _, x := range cur {
				if d.HasLine(x, q) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			cur = append(cur, q)
			extend(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	extend(0)
}

func uncoveredPairs(d *design.Design, points []int) []Pair {
	var out []Pair
	for i, a := range points {
		for _, b := range points[i+1:] {
			if !d.HasLine(a, b) {
				out = append(out, Pair{a, b})
			}
		}
	}
	return out
}

func linePairs(l design.Line) []Pair {
	out := make([]Pair, 0, len(l)*(len(l)-1)/2)
	for i, a := range l {
		for _, b := range l[i+1:] {
			out = append(out, Pair{a, b})
		}
	}
	return out
}
