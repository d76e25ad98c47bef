package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// SeedParams configures a seed search.
type SeedParams struct {
	// NumPoints is the design size.
	NumPoints int
	// MaxLen is the longest line tried. Zero selects DefaultMaxLen.
	MaxLen int
	// InitialLen is the length of the initial line {0, ..., InitialLen-1}
	// and the shortest line length tried.
	InitialLen int
	// PtUpTo is the number of leading points to saturate.
	PtUpTo int
}

func (p SeedParams) validate() error {
	if p.NumPoints < 1 || p.NumPoints > design.MaxPoints {
		return fmt.Errorf("seed search: %w: %d", design.ErrInvalidSize, p.NumPoints)
	}
	if p.InitialLen < 3 || p.InitialLen > p.NumPoints {
		return fmt.Errorf("seed search: initial line length %d outside [3, %d]", p.InitialLen, p.NumPoints)
	}
	if p.PtUpTo < 0 || p.PtUpTo > p.NumPoints {
		return fmt.Errorf("seed search: pt_up_to %d outside [0, %d]", p.PtUpTo, p.NumPoints)
	}
	if p.MaxLen < 0 {
		return fmt.Errorf("seed search: negative max line length %d", p.MaxLen)
	}
	return nil
}

// SeedSearch enumerates, up to isomorphism, every way to saturate points
// 0..PtUpTo-1 in order, starting from the initial line, with lines whose
// lengths lie in [InitialLen, MaxLen].
//
// Results come out in frontier order, which is stable for deterministic
// oracles. An empty result is not an error.
func (e *Engine) SeedSearch(ctx context.Context, p SeedParams) ([]Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.MaxLen == 0 {
		p.MaxLen = DefaultMaxLen(p.NumPoints)
	}

	slog.Debug("seed search starting",
		"n", p.NumPoints,
		"max_len", p.MaxLen,
		"initial_len", p.InitialLen,
		"pt_up_to", p.PtUpTo,
	)
	start := time.Now()
	results, err := e.seedSearch(ctx, p)
	e.observer.SearchFinished(PhaseSeed, len(results), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	slog.Debug("seed search finished", "n", p.NumPoints, "seeds", len(results), "elapsed", time.Since(start))
	return results, nil
}

func (e *Engine) seedSearch(ctx context.Context, p SeedParams) ([]Result, error) {
	n := p.NumPoints
	minLen := p.InitialLen
	table := e.LineTable(n, p.MaxLen)

	initial := make([]int, p.InitialLen)
	for i := range initial {
		initial[i] = i
	}
	base, err := design.New(n, initial)
	if err != nil {
		return nil, err
	}
	baseFP, err := e.fingerprint(ctx, PhaseSeed, base)
	if err != nil {
		return nil, err
	}

	seen := canon.NewFingerprintSet()
	seen.Add(baseFP)

	q := newFrontier()
	q.PushBack(workItem{design: base, fingerprint: baseFP, lengthOn: p.MaxLen})

	quota := NewQuotaEnforcer(e.maxSteps)
	prog := newProgress(PhaseSeed, n)
	var results []Result

	for {
		w, ok := q.PopFront()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := quota.Check(PhaseSeed); err != nil {
			return nil, NewQuotaError(PhaseSeed, n, err.(*StepsExceededError))
		}
		e.observer.FrontierPopped(q.Len())
		prog.step(q.Len(), len(results), w.design.NumLines())

		d := w.design

		if w.ptOn == p.PtUpTo {
			results = append(results, e.record(PhaseSeed, d, w.fingerprint))
			continue
		}

		// Settled; move on once the siblings at this point are done.
		if d.IsSaturated(w.ptOn) {
			q.PushBack(workItem{
				design:      d,
				fingerprint: w.fingerprint,
				ptOn:        w.ptOn + 1,
				lengthOn:    p.MaxLen,
			})
			continue
		}

		// MaxLen below InitialLen leaves no permitted length.
		if w.lengthOn < minLen {
			continue
		}

		candidates := table.Through(w.ptOn, w.lengthOn)
		if w.optionOn == len(candidates) {
			if w.lengthOn > minLen {
				q.PushBack(workItem{
					design:      d,
					fingerprint: w.fingerprint,
					ptOn:        w.ptOn,
					lengthOn:    w.lengthOn - 1,
				})
			}
			continue
		}

		c := candidates[w.optionOn]
		skip := w
		skip.optionOn++

		if d.CanAdd(c) {
			if err := d.AddLine(c); err != nil {
				return nil, NewInvariantError(PhaseSeed, n, err)
			}
			f, err := e.fingerprint(ctx, PhaseSeed, d)
			d.RemoveLine(c)
			if err != nil {
				return nil, err
			}

			if seen.Add(f) {
				child := d.Clone()
				child.MustAddLine(c)
				q.PushBack(workItem{
					design:      child,
					fingerprint: f,
					ptOn:        w.ptOn,
					lengthOn:    w.lengthOn,
					optionOn:    w.optionOn + 1,
				})
				e.observer.BranchSpawned()
			}
		}
		q.PushFront(skip)
	}
	return results, nil
}
