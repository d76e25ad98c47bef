package design

import (
	"fmt"
	"strings"
)

// MaxPoints bounds the number of points in a design.
const MaxPoints = 255

// Design is a partial linear space on a fixed number of points.
//
// INVARIANTS:
//   - hasLine[v1*n+v2] is true iff some stored line contains v1 and v2
//   - no pair of distinct points lies on two stored lines
//   - every stored line is sorted, has >= 3 distinct points in range
type Design struct {
	numPoints int
	lines     []Line
	present   map[string]struct{}
	hasLine   []bool // row-major numPoints x numPoints, symmetric
	degree    []int  // degree[p] = number of points q with hasLine[p][q]
}

// New creates a design on numPoints points and adds lines in order.
func New(numPoints int, lines ...[]int) (*Design, error) {
	if numPoints < 1 || numPoints > MaxPoints {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, numPoints)
	}
	d := &Design{
		numPoints: numPoints,
		present:   make(map[string]struct{}),
		hasLine:   make([]bool, numPoints*numPoints),
		degree:    make([]int, numPoints),
	}
	for _, l := range lines {
		if err := d.AddLine(l); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustNew is like New but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNew(numPoints int, lines ...[]int) *Design {
	d, err := New(numPoints, lines...)
	if err != nil {
		panic(err)
	}
	return d
}

// NumPoints returns the number of points.
func (d *Design) NumPoints() int { return d.numPoints }

// NumLines returns the number of stored lines.
func (d *Design) NumLines() int { return len(d.lines) }

// Line returns the i-th stored line. The result must not be modified.
func (d *Design) Line(i int) Line { return d.lines[i] }

// Lines returns a copy of the stored lines in insertion order.
func (d *Design) Lines() []Line {
	out := make([]Line, len(d.lines))
	for i, l := range d.lines {
		out[i] = append(Line(nil), l...)
	}
	return out
}

// LineLists returns the stored lines as plain int slices, for serialization.
func (d *Design) LineLists() [][]int {
	out := make([][]int, len(d.lines))
	for i, l := range d.lines {
		out[i] = append([]int(nil), l...)
	}
	return out
}

// HasLine reports whether some stored line contains both p and q.
func (d *Design) HasLine(p, q int) bool {
	return d.hasLine[p*d.numPoints+q]
}

// Contains reports whether the sorted form of points is a stored line.
func (d *Design) Contains(points []int) bool {
	_, ok := d.present[NewLine(points...).key()]
	return ok
}

// CanAdd reports whether no pair of points in points is already covered.
// It does not validate the line itself.
func (d *Design) CanAdd(points []int) bool {
	n := d.numPoints
	for i, p := range points {
		row := p * n
		for _, q := range points[i+1:] {
			if d.hasLine[row+q] {
				return false
			}
		}
	}
	return true
}

// AddLine appends the sorted form of points and marks all its pairs covered.
// Adding a line that is already stored is a no-op. Adding a line that
// shares a covered pair returns an *InvariantError and leaves d unchanged.
func (d *Design) AddLine(points []int) error {
	l := NewLine(points...)
	if err := l.validate(d.numPoints); err != nil {
		return err
	}
	k := l.key()
	if _, ok := d.present[k]; ok {
		return nil
	}

	n := d.numPoints
	for i, p := range l {
		for _, q := range l[i+1:] {
			if d.hasLine[p*n+q] {
				return &InvariantError{Line: l, P: p, Q: q}
			}
		}
	}

	d.lines = append(d.lines, l)
	d.present[k] = struct{}{}
	d.setPairs(l, true)
	return nil
}

// MustAddLine is like AddLine but panics on error. The seed search uses it
// to replay a line onto a clone after the same line was already added to
// the original, so a failure is a programming defect.
func (d *Design) MustAddLine(points []int) {
	if err := d.AddLine(points); err != nil {
		panic(err)
	}
}

// RemoveLine removes the sorted form of points if stored and clears its
// pairs. It is the inverse of AddLine for the same argument.
func (d *Design) RemoveLine(points []int) {
	l := NewLine(points...)
	k := l.key()
	if _, ok := d.present[k]; !ok {
		return
	}

	// The most recently added line is the common case.
	for i := len(d.lines) - 1; i >= 0; i-- {
		if d.lines[i].Equal(l) {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			break
		}
	}
	delete(d.present, k)
	d.setPairs(l, false)
}

func (d *Design) setPairs(l Line, covered bool) {
	n := d.numPoints
	delta := len(l) - 1
	if !covered {
		delta = -delta
	}
	for i, p := range l {
		for _, q := range l[i+1:] {
			d.hasLine[p*n+q] = covered
			d.hasLine[q*n+p] = covered
		}
		d.degree[p] += delta
	}
}

// Clone returns a deep copy, including the incidence matrix.
func (d *Design) Clone() *Design {
	c := &Design{
		numPoints: d.numPoints,
		lines:     make([]Line, len(d.lines)),
		present:   make(map[string]struct{}, len(d.present)),
		hasLine:   append([]bool(nil), d.hasLine...),
		degree:    append([]int(nil), d.degree...),
	}
	copy(c.lines, d.lines) // lines are never mutated in place
	for k := range d.present {
		c.present[k] = struct{}{}
	}
	return c
}

// Degree returns how many other points share a line with p.
func (d *Design) Degree(p int) int { return d.degree[p] }

// IsSaturated reports whether p shares a line with every other point.
func (d *Design) IsSaturated(p int) bool { return d.degree[p] == d.numPoints-1 }

// IsComplete reports whether every pair of points lies on a line.
func (d *Design) IsComplete() bool {
	for p := 0; p < d.numPoints; p++ {
		if !d.IsSaturated(p) {
			return false
		}
	}
	return true
}

// Unpaired returns the points q != p that share no line with p, ascending.
func (d *Design) Unpaired(p int) []int {
	var out []int
	row := p * d.numPoints
	for q := 0; q < d.numPoints; q++ {
		if q != p && !d.hasLine[row+q] {
			out = append(out, q)
		}
	}
	return out
}

// MinLineLen returns the length of the shortest line, or 0 with no lines.
func (d *Design) MinLineLen() int {
	m := 0
	for _, l := range d.lines {
		if m == 0 || len(l) < m {
			m = len(l)
		}
	}
	return m
}

// MaxLineLen returns the length of the longest line, or 0 with no lines.
func (d *Design) MaxLineLen() int {
	m := 0
	for _, l := range d.lines {
		m = max(m, len(l))
	}
	return m
}

// Validate recomputes the incidence matrix from the line list and checks
// it against the stored one and against the linear-space axiom.
func (d *Design) Validate() error {
	n := d.numPoints
	count := make([]int, n*n)
	for _, l := range d.lines {
		if err := l.validate(n); err != nil {
			return err
		}
		for i, p := range l {
			for _, q := range l[i+1:] {
				count[p*n+q]++
				if count[p*n+q] > 1 {
					return &InvariantError{Line: l, P: p, Q: q}
				}
			}
		}
	}
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			want := count[p*n+q] == 1
			if d.hasLine[p*n+q] != want || d.hasLine[q*n+p] != want {
				return fmt.Errorf("design: incidence matrix out of sync at (%d,%d)", p, q)
			}
		}
	}
	return nil
}

// Relabel returns the design obtained by renaming every point p to perm[p].
// perm must be a permutation of [0, num_points).
func (d *Design) Relabel(perm []int) (*Design, error) {
	if len(perm) != d.numPoints {
		return nil, fmt.Errorf("design: permutation has %d entries, want %d", len(perm), d.numPoints)
	}
	seen := make([]bool, d.numPoints)
	for _, p := range perm {
		if p < 0 || p >= d.numPoints || seen[p] {
			return nil, fmt.Errorf("design: %v is not a permutation", perm)
		}
		seen[p] = true
	}
	out, _ := New(d.numPoints)
	for _, l := range d.lines {
		mapped := make([]int, len(l))
		for i, p := range l {
			mapped[i] = perm[p]
		}
		if err := out.AddLine(mapped); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// String lists the lines one per row, as in the result listings.
func (d *Design) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
