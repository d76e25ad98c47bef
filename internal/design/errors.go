package design

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation is returned when adding a line would put two
	// lines through the same pair of points.
	ErrInvariantViolation = errors.New("design: pair already lies on a line")

	// ErrInvalidLine is returned for lines with fewer than three points,
	// repeated points, or points outside [0, num_points).
	ErrInvalidLine = errors.New("design: invalid line")

	// ErrInvalidSize is returned for point counts outside [1, MaxPoints].
	ErrInvalidSize = errors.New("design: invalid number of points")
)

// InvariantError reports the line and the first pair that was already
// covered when the line was added.
type InvariantError struct {
	Line Line
	P, Q int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: adding %v, pair (%d,%d) already covered", ErrInvariantViolation, e.Line, e.P, e.Q)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }
