package cover

import (
	"context"
	"fmt"
	"iter"
)

// Adapter marshals a covering problem stated over candidate objects of type
// T and universe elements of type K into a Problem, and maps each Cover back
// to the candidates it selects.
type Adapter[T any, K comparable] struct {
	oracle Oracle
	keys   func(T) []K
}

// NewAdapter creates an Adapter. keys returns the universe elements a
// candidate covers. A nil oracle selects AlgorithmX.
func NewAdapter[T any, K comparable](oracle Oracle, keys func(T) []K) *Adapter[T, K] {
	if oracle == nil {
		oracle = NewAlgorithmX()
	}
	return &Adapter[T, K]{oracle: oracle, keys: keys}
}

// Problem builds the index form of the covering problem.
func (a *Adapter[T, K]) Problem(universe []K, candidates []T) (Problem, error) {
	index := make(map[K]int, len(universe))
	for i, k := range universe {
		if _, dup := index[k]; dup {
			return Problem{}, fmt.Errorf("cover: universe element %v repeated", k)
		}
		index[k] = i
	}
	p := Problem{Universe: len(universe), Sets: make([][]int, len(candidates))}
	for i, c := range candidates {
		ks := a.keys(c)
		set := make([]int, 0, len(ks))
		for _, k := range ks {
			item, ok := index[k]
			if !ok {
				return Problem{}, fmt.Errorf("%w: candidate %d covers %v", ErrItemRange, i, k)
			}
			set = append(set, item)
		}
		p.Sets[i] = set
	}
	return p, nil
}

// Solve yields every subfamily of candidates that covers universe exactly
// once. Candidates in a cover keep their input order.
func (a *Adapter[T, K]) Solve(ctx context.Context, universe []K, candidates []T) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		p, err := a.Problem(universe, candidates)
		if err != nil {
			yield(nil, err)
			return
		}
		for c, err := range a.oracle.Covers(ctx, p) {
			if err != nil {
				yield(nil, err)
				return
			}
			picked := make([]T, len(c))
			for i, idx := range c {
				picked[i] = candidates[idx]
			}
			if !yield(picked, nil) {
				return
			}
		}
	}
}
