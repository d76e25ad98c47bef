package canon

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/testutil"
)

func fingerprint(t *testing.T, d *design.Design) Fingerprint {
	t.Helper()
	f, err := NewRefiner().Canonicalize(context.Background(), DesignGraph(d))
	require.NoError(t, err)
	return f
}

func graphFingerprint(t *testing.T, g *Graph) Fingerprint {
	t.Helper()
	f, err := NewRefiner().Canonicalize(context.Background(), g)
	require.NoError(t, err)
	return f
}

func relabel(t *testing.T, d *design.Design, rng *rand.Rand) *design.Design {
	t.Helper()
	r, err := d.Relabel(rng.Perm(d.NumPoints()))
	require.NoError(t, err)
	return r
}

func TestRefiner_InvariantUnderRelabelling(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tests := []struct {
		name string
		d    *design.Design
	}{
		{"fano", testutil.Fano()},
		{"affine plane of order 3", testutil.AffinePlane3()},
		{"single line with isolated points", design.MustNew(12, []int{0, 1, 2})},
		{"pencil", design.MustNew(9, []int{0, 1, 2}, []int{0, 3, 4}, []int{0, 5, 6}, []int{0, 7, 8})},
		{"mixed lengths", design.MustNew(10, []int{0, 1, 2, 3}, []int{0, 4, 5}, []int{1, 4, 6}, []int{7, 8, 9})},
		{"empty", design.MustNew(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := fingerprint(t, tt.d)
			for i := 0; i < 10; i++ {
				assert.Equal(t, want, fingerprint(t, relabel(t, tt.d, rng)))
			}
		})
	}
}

func TestRefiner_LineOrderDoesNotMatter(t *testing.T) {
	reversed := make([][]int, len(testutil.FanoLines))
	for i, l := range testutil.FanoLines {
		reversed[len(testutil.FanoLines)-1-i] = l
	}
	assert.Equal(t,
		fingerprint(t, testutil.Fano()),
		fingerprint(t, design.MustNew(7, reversed...)))
}

// TestRefiner_RandomPartialDesigns builds random partial designs and checks
// that every relabelling gets the same fingerprint.
func TestRefiner_RandomPartialDesigns(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	table := design.NewLineTable(10, 4)
	for trial := 0; trial < 25; trial++ {
		d := design.MustNew(10)
		for step := 0; step < 15; step++ {
			cands := table.WithLen(3 + rng.Intn(2))
			l := cands[rng.Intn(len(cands))]
			if d.CanAdd(l) {
				d.MustAddLine(l)
			}
		}
		want := fingerprint(t, d)
		for i := 0; i < 4; i++ {
			require.Equal(t, want, fingerprint(t, relabel(t, d, rng)), "trial %d:\n%s", trial, d)
		}
	}
}

func TestRefiner_DistinguishesNonIsomorphic(t *testing.T) {
	tests := []struct {
		name string
		a, b *design.Design
	}{
		{
			"disjoint vs meeting lines",
			design.MustNew(6, []int{0, 1, 2}, []int{3, 4, 5}),
			design.MustNew(6, []int{0, 1, 2}, []int{0, 3, 4}),
		},
		{
			"fano vs fano minus a line",
			testutil.Fano(),
			design.MustNew(7, testutil.FanoLines[:6]...),
		},
		{
			"triangle vs pencil of three lines",
			design.MustNew(9, []int{0, 1, 2}, []int{0, 3, 4}, []int{1, 3, 5}),
			design.MustNew(9, []int{0, 1, 2}, []int{0, 3, 4}, []int{0, 5, 6}),
		},
		{
			"same lines different point count",
			design.MustNew(6, []int{0, 1, 2}),
			design.MustNew(7, []int{0, 1, 2}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, fingerprint(t, tt.a), fingerprint(t, tt.b))
		})
	}
}

// Colour refinement alone cannot tell a 6-cycle from two triangles.
func TestRefiner_RegularGraphsNeedIndividualization(t *testing.T) {
	cycle := NewGraph(6)
	for i := 0; i < 6; i++ {
		cycle.AddEdge(i, (i+1)%6)
	}
	triangles := NewGraph(6)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}} {
		triangles.AddEdge(e[0], e[1])
	}
	assert.NotEqual(t, graphFingerprint(t, cycle), graphFingerprint(t, triangles))

	shifted := NewGraph(6)
	for i := 0; i < 6; i++ {
		shifted.AddEdge((i*5)%6, (i*5+5)%6)
	}
	assert.Equal(t, graphFingerprint(t, cycle), graphFingerprint(t, shifted))
}

func TestRefiner_ColoursMatter(t *testing.T) {
	a := NewGraph(3)
	a.AddEdge(0, 1)
	a.AddEdge(1, 2)
	b := NewGraph(3)
	b.AddEdge(0, 1)
	b.AddEdge(1, 2)
	b.Colors[1] = 1
	c := NewGraph(3)
	c.AddEdge(0, 1)
	c.AddEdge(1, 2)
	c.Colors[0] = 1

	assert.NotEqual(t, graphFingerprint(t, a), graphFingerprint(t, b))
	assert.NotEqual(t, graphFingerprint(t, b), graphFingerprint(t, c))
}

func TestRefiner_TwinPruningKeepsTreeSmall(t *testing.T) {
	d := design.MustNew(80, []int{0, 1, 2})
	_, err := NewRefiner(WithMaxNodes(500)).Canonicalize(context.Background(), DesignGraph(d))
	require.NoError(t, err)
}

func TestRefiner_SearchLimit(t *testing.T) {
	d := testutil.Fano()
	_, err := NewRefiner(WithMaxNodes(1)).Canonicalize(context.Background(), DesignGraph(d))
	assert.ErrorIs(t, err, ErrSearchLimit)
}

func TestRefiner_RejectsInvalidGraph(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
	}{
		{"colour length", &Graph{N: 2, Colors: []int{0}, Adj: make([][]int, 2)}},
		{"self loop", &Graph{N: 2, Colors: []int{0, 0}, Adj: [][]int{{0}, {}}}},
		{"out of range", &Graph{N: 2, Colors: []int{0, 0}, Adj: [][]int{{5}, {}}}},
		{"repeated edge", &Graph{N: 2, Colors: []int{0, 0}, Adj: [][]int{{1, 1}, {0, 0}}}},
		{"negative colour", &Graph{N: 1, Colors: []int{-1}, Adj: [][]int{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRefiner().Canonicalize(context.Background(), tt.g)
			assert.Error(t, err)
		})
	}
}

func TestRefiner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := design.MustNew(13, projective3Lines()...)
	_, err := NewRefiner().Canonicalize(ctx, DesignGraph(d))
	assert.ErrorIs(t, err, context.Canceled)
}

// projective3Lines returns PG(2,3): 13 points, 13 lines of 4.
func projective3Lines() [][]int {
	// Difference set {0,1,3,9} mod 13.
	base := []int{0, 1, 3, 9}
	lines := make([][]int, 13)
	for i := range lines {
		l := make([]int, len(base))
		for j, b := range base {
			l[j] = (b + i) % 13
		}
		lines[i] = l
	}
	return lines
}

func TestRefiner_ProjectivePlaneOrder3(t *testing.T) {
	d := design.MustNew(13, projective3Lines()...)
	require.True(t, d.IsComplete())
	rng := rand.New(rand.NewSource(3))
	want := fingerprint(t, d)
	assert.Equal(t, want, fingerprint(t, relabel(t, d, rng)))
}
