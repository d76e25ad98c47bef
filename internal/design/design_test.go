package design

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fanoLines = [][]int{
	{0, 1, 2}, {0, 3, 4}, {0, 5, 6},
	{1, 3, 5}, {1, 4, 6}, {2, 3, 6}, {2, 4, 5},
}

func TestNew_Fano(t *testing.T) {
	d, err := New(7, fanoLines...)
	require.NoError(t, err)

	assert.Equal(t, 7, d.NumPoints())
	assert.Equal(t, 7, d.NumLines())
	assert.True(t, d.IsComplete())
	assert.Equal(t, 3, d.MinLineLen())
	assert.Equal(t, 3, d.MaxLineLen())
	require.NoError(t, d.Validate())
	for p := 0; p < 7; p++ {
		assert.Equal(t, 6, d.Degree(p))
		assert.Empty(t, d.Unpaired(p))
	}
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(MaxPoints + 1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestAddLine_SortsAndIgnoresDuplicates(t *testing.T) {
	d := MustNew(6)
	require.NoError(t, d.AddLine([]int{4, 0, 2}))
	require.NoError(t, d.AddLine([]int{2, 4, 0}))

	assert.Equal(t, []Line{{0, 2, 4}}, d.Lines())
	assert.True(t, d.Contains([]int{4, 2, 0}))
	assert.True(t, d.HasLine(0, 4))
	assert.True(t, d.HasLine(4, 0))
	assert.False(t, d.HasLine(0, 1))
}

func TestAddLine_InvariantViolation(t *testing.T) {
	d := MustNew(6, []int{0, 1, 2})
	before := d.Clone()

	err := d.AddLine([]int{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, Line{1, 2, 3}, ie.Line)
	assert.Equal(t, 1, ie.P)
	assert.Equal(t, 2, ie.Q)

	assert.Equal(t, before.Lines(), d.Lines(), "failed add must leave design unchanged")
	assert.Equal(t, before.hasLine, d.hasLine)
}

func TestAddLine_InvalidLines(t *testing.T) {
	tests := []struct {
		name string
		line []int
	}{
		{"too short", []int{0, 1}},
		{"repeated point", []int{0, 1, 1}},
		{"out of range", []int{0, 1, 6}},
		{"negative", []int{-1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustNew(6)
			assert.ErrorIs(t, d.AddLine(tt.line), ErrInvalidLine)
			assert.Zero(t, d.NumLines())
		})
	}
}

func TestMustAddLine_PanicsOnViolation(t *testing.T) {
	d := MustNew(5, []int{0, 1, 2})
	assert.Panics(t, func() { d.MustAddLine([]int{0, 1, 3}) })
}

func TestAddRemoveInverse(t *testing.T) {
	d := MustNew(9, []int{0, 1, 2}, []int{0, 3, 4}, []int{1, 3, 5})
	lines := d.Lines()
	matrix := append([]bool(nil), d.hasLine...)
	degree := append([]int(nil), d.degree...)

	l := []int{2, 6, 7, 8}
	require.True(t, d.CanAdd(l))
	require.NoError(t, d.AddLine(l))
	assert.False(t, d.CanAdd(l))
	d.RemoveLine(l)

	assert.Equal(t, lines, d.Lines())
	assert.Equal(t, matrix, d.hasLine)
	assert.Equal(t, degree, d.degree)
	assert.True(t, d.CanAdd(l))
}

func TestRemoveLine_AbsentIsNoop(t *testing.T) {
	d := MustNew(6, []int{0, 1, 2})
	d.RemoveLine([]int{3, 4, 5})
	assert.Equal(t, 1, d.NumLines())
	assert.True(t, d.HasLine(0, 1))
}

func TestRemoveLine_MiddleKeepsOrder(t *testing.T) {
	d := MustNew(9, []int{0, 1, 2}, []int{3, 4, 5}, []int{6, 7, 8})
	d.RemoveLine([]int{5, 4, 3})
	assert.Equal(t, []Line{{0, 1, 2}, {6, 7, 8}}, d.Lines())
	assert.False(t, d.HasLine(3, 4))
	require.NoError(t, d.Validate())
}

func TestClone_IsIndependent(t *testing.T) {
	d := MustNew(7, []int{0, 1, 2})
	c := d.Clone()
	c.MustAddLine([]int{0, 3, 4})

	assert.Equal(t, 1, d.NumLines())
	assert.False(t, d.HasLine(0, 3))
	assert.Equal(t, 2, c.NumLines())
	assert.True(t, c.HasLine(0, 3))
}

// TestInvariantPreservation drives random CanAdd-gated AddLine/RemoveLine
// sequences and checks has_line against a count recomputed from the lines.
func TestInvariantPreservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 10
	table := NewLineTable(n, 5)

	for trial := 0; trial < 20; trial++ {
		d := MustNew(n)
		for step := 0; step < 60; step++ {
			if d.NumLines() > 0 && rng.Intn(4) == 0 {
				d.RemoveLine(d.Line(rng.Intn(d.NumLines())))
			} else {
				k := 3 + rng.Intn(3)
				cands := table.WithLen(k)
				l := cands[rng.Intn(len(cands))]
				if d.CanAdd(l) {
					require.NoError(t, d.AddLine(l))
				}
			}
			require.NoError(t, d.Validate())
			for p := 0; p < n; p++ {
				assert.Equal(t, n-1-len(d.Unpaired(p)), d.Degree(p))
			}
		}
	}
}

func TestValidate_DetectsDoubleCover(t *testing.T) {
	d := MustNew(5, []int{0, 1, 2})
	// Bypass AddLine to simulate corruption.
	d.lines = append(d.lines, Line{0, 1, 3})
	assert.ErrorIs(t, d.Validate(), ErrInvariantViolation)
}

func TestRelabel(t *testing.T) {
	d := MustNew(7, fanoLines...)
	r, err := d.Relabel([]int{6, 5, 4, 3, 2, 1, 0})
	require.NoError(t, err)
	assert.True(t, r.IsComplete())
	assert.True(t, r.Contains([]int{6, 5, 4}))
	assert.Equal(t, d.NumLines(), r.NumLines())

	_, err = d.Relabel([]int{0, 0, 1, 2, 3, 4, 5})
	assert.Error(t, err)
	_, err = d.Relabel([]int{0, 1})
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	d := MustNew(5, []int{2, 0, 1}, []int{0, 3, 4})
	assert.Equal(t, "(0, 1, 2)\n(0, 3, 4)\n", d.String())
}
