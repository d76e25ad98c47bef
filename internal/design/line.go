package design

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Line is a set of points kept in ascending order. Two lines are equal iff
// their sorted point sequences are equal.
type Line []int

// NewLine returns the sorted form of points. The input is not modified.
func NewLine(points ...int) Line {
	l := make(Line, len(points))
	copy(l, points)
	slices.Sort(l)
	return l
}

// Contains reports whether p lies on the line.
func (l Line) Contains(p int) bool {
	_, ok := slices.BinarySearch(l, p)
	return ok
}

// Equal reports whether two lines hold the same points.
func (l Line) Equal(o Line) bool {
	return slices.Equal(l, o)
}

// Without returns the points of l other than p, in order.
func (l Line) Without(p int) []int {
	out := make([]int, 0, len(l))
	for _, q := range l {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// key is a compact lookup key. Points are < MaxPoints so one byte each.
func (l Line) key() string {
	b := make([]byte, len(l))
	for i, p := range l {
		b[i] = byte(p)
	}
	return string(b)
}

func (l Line) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = strconv.Itoa(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// validate checks the line against a design of n points.
func (l Line) validate(n int) error {
	if len(l) < 3 {
		return fmt.Errorf("%w: %v has %d points, need at least 3", ErrInvalidLine, l, len(l))
	}
	for i, p := range l {
		if p < 0 || p >= n {
			return fmt.Errorf("%w: point %d out of range [0,%d)", ErrInvalidLine, p, n)
		}
		if i > 0 && l[i-1] == p {
			return fmt.Errorf("%w: point %d repeated in %v", ErrInvalidLine, p, l)
		}
	}
	return nil
}
