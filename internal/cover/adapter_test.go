package cover

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair [2]int

type tri []int

func (t tri) pairs() []pair {
	var out []pair
	for i := range t {
		for j := i + 1; j < len(t); j++ {
			out = append(out, pair{t[i], t[j]})
		}
	}
	return out
}

func collect[T any](t *testing.T, seq iter.Seq2[[]T, error]) [][]T {
	t.Helper()
	var out [][]T
	for c, err := range seq {
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestAdapter_PointUniverse(t *testing.T) {
	// Saturating point 0 of a 5-point design: cover {1,2,3,4} by lines through 0.
	a := NewAdapter(nil, func(l tri) []int { return l[1:] })
	cands := []tri{{0, 1, 2}, {0, 1, 3}, {0, 3, 4}, {0, 2, 4}, {0, 1, 2, 3, 4}}

	covers := collect(t, a.Solve(context.Background(), []int{1, 2, 3, 4}, cands))

	assert.ElementsMatch(t, [][]tri{
		{{0, 1, 2}, {0, 3, 4}},
		{{0, 1, 3}, {0, 2, 4}},
		{{0, 1, 2, 3, 4}},
	}, covers)
}

func TestAdapter_PairUniverseFano(t *testing.T) {
	// Pairs of {0..6} minus those on {0,1,2}; the six remaining Fano lines
	// through a fixed first line: two completions.
	var universe []pair
	for i := range 7 {
		for j := i + 1; j < 7; j++ {
			if i <= 2 && j <= 2 {
				continue
			}
			universe = append(universe, pair{i, j})
		}
	}
	var cands []tri
	for i := range 7 {
		for j := i + 1; j < 7; j++ {
			for k := j + 1; k < 7; k++ {
				l := tri{i, j, k}
				if (i <= 2 && j <= 2) || (j <= 2 && k <= 2) {
					continue
				}
				cands = append(cands, l)
			}
		}
	}
	a := NewAdapter(NewAlgorithmX(), tri.pairs)

	covers := collect(t, a.Solve(context.Background(), universe, cands))

	// Each labelled Fano plane containing {0,1,2}: 7!/168 planes total, 30,
	// of which those containing a given line number 30*7/35 = 6.
	assert.Len(t, covers, 6)
	for _, c := range covers {
		assert.Len(t, c, 6)
	}
}

func TestAdapter_UnknownKey(t *testing.T) {
	a := NewAdapter(nil, func(l tri) []int { return l })
	_, err := a.Problem([]int{1, 2}, []tri{{1, 5}})
	assert.ErrorIs(t, err, ErrItemRange)

	for _, err := range a.Solve(context.Background(), []int{1, 2}, []tri{{1, 5}}) {
		assert.ErrorIs(t, err, ErrItemRange)
	}
}

func TestAdapter_RepeatedUniverseElement(t *testing.T) {
	a := NewAdapter(nil, func(l tri) []int { return l })
	_, err := a.Problem([]int{1, 1}, nil)
	assert.Error(t, err)
}

type brokenOracle struct{}

func (brokenOracle) Covers(context.Context, Problem) iter.Seq2[Cover, error] {
	return func(yield func(Cover, error) bool) {
		if !yield(Cover{0}, nil) {
			return
		}
		yield(nil, errors.New("solver crashed"))
	}
}

func TestAdapter_PropagatesOracleError(t *testing.T) {
	a := NewAdapter(brokenOracle{}, func(l tri) []int { return l })

	var got [][]tri
	var lastErr error
	for c, err := range a.Solve(context.Background(), []int{0}, []tri{{0}}) {
		if err != nil {
			lastErr = err
			break
		}
		got = append(got, c)
	}
	assert.Equal(t, [][]tri{{{0}}}, got)
	assert.EqualError(t, lastErr, "solver crashed")
}
