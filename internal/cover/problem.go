package cover

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// ErrItemRange is returned when a candidate set names an item outside the
// universe.
var ErrItemRange = errors.New("cover: item out of range")

// Problem is an exact-cover instance.
type Problem struct {
	// Universe is the number of items; items are 0..Universe-1.
	Universe int
	// Sets are the candidate sets. Repeated items inside one set are
	// ignored; an empty set is never part of a cover.
	Sets [][]int
}

// Validate checks that every item lies in the universe.
func (p Problem) Validate() error {
	if p.Universe < 0 {
		return fmt.Errorf("cover: negative universe %d", p.Universe)
	}
	for i, s := range p.Sets {
		for _, item := range s {
			if item < 0 || item >= p.Universe {
				return fmt.Errorf("%w: set %d has item %d, universe %d", ErrItemRange, i, item, p.Universe)
			}
		}
	}
	return nil
}

// Cover is one exact cover: indices into Problem.Sets in ascending order.
type Cover []int

// Oracle enumerates every exact cover of a Problem.
//
// The sequence is finite and possibly empty. An error is yielded at most
// once, as the last element. Implementations must be deterministic.
type Oracle interface {
	Covers(ctx context.Context, p Problem) iter.Seq2[Cover, error]
}

// All drains covers into a slice.
func All(seq iter.Seq2[Cover, error]) ([]Cover, error) {
	var out []Cover
	for c, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}
