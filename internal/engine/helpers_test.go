package engine

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/cover"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// countingObserver tallies events.
type countingObserver struct {
	pops, fingerprints, branches int
	covers, results             map[Phase]int
	finished                    map[Phase]int
	lastErr                     error
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		covers:   make(map[Phase]int),
		results:  make(map[Phase]int),
		finished: make(map[Phase]int),
	}
}

func (o *countingObserver) FrontierPopped(int)            { o.pops++ }
func (o *countingObserver) FingerprintComputed(Phase)     { o.fingerprints++ }
func (o *countingObserver) BranchSpawned()                { o.branches++ }
func (o *countingObserver) CoverFound(p Phase)            { o.covers[p]++ }
func (o *countingObserver) ResultRecorded(p Phase)        { o.results[p]++ }
func (o *countingObserver) SearchFinished(p Phase, _ int, _ time.Duration, err error) {
	o.finished[p]++
	o.lastErr = err
}

type failingCanon struct{}

func (failingCanon) Canonicalize(context.Context, *canon.Graph) (canon.Fingerprint, error) {
	return "", errors.New("canon down")
}

type failingCover struct{}

func (failingCover) Covers(context.Context, cover.Problem) iter.Seq2[cover.Cover, error] {
	return func(yield func(cover.Cover, error) bool) {
		yield(nil, errors.New("cover down"))
	}
}

func fingerprintOf(t *testing.T, e *Engine, n int, lines ...[]int) canon.Fingerprint {
	t.Helper()
	f, err := e.Fingerprint(context.Background(), design.MustNew(n, lines...))
	require.NoError(t, err)
	return f
}

func assertDistinct(t *testing.T, results []Result) {
	t.Helper()
	seen := make(map[canon.Fingerprint]bool)
	for _, r := range results {
		require.False(t, seen[r.Fingerprint], "duplicate fingerprint for %v", r.Design)
		seen[r.Fingerprint] = true
	}
}
