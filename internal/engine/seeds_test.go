package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/testutil"
)

func TestSeedSearch_InitialLineAlreadySaturates(t *testing.T) {
	e := New()
	seeds, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 3, InitialLen: 3, PtUpTo: 2})
	require.NoError(t, err)

	require.Len(t, seeds, 1)
	assert.Equal(t, [][]int{{0, 1, 2}}, seeds[0].Design.LineLists())
	assert.Equal(t, int64(1), seeds[0].Seq)
}

func TestSeedSearch_PtUpToZeroReturnsBase(t *testing.T) {
	e := New()
	seeds, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 9, InitialLen: 4, PtUpTo: 0})
	require.NoError(t, err)

	require.Len(t, seeds, 1)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, seeds[0].Design.LineLists())
}

func TestSeedSearch_SevenPoints(t *testing.T) {
	obs := newCountingObserver()
	e := New(WithObserver(obs))

	seeds, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 7, MaxLen: 3, InitialLen: 3, PtUpTo: 2})
	require.NoError(t, err)

	// Pencils of triples through 0 and 1 are unique up to isomorphism.
	require.Len(t, seeds, 1)
	d := seeds[0].Design
	assert.True(t, d.IsSaturated(0))
	assert.True(t, d.IsSaturated(1))
	assert.Equal(t, 5, d.NumLines())
	assert.Equal(t, 3, d.MinLineLen())
	assert.Equal(t, 3, d.MaxLineLen())
	require.NoError(t, d.Validate())

	assert.Positive(t, obs.pops)
	assert.Positive(t, obs.branches)
	assert.Equal(t, 1, obs.results[PhaseSeed])
	assert.Equal(t, 1, obs.finished[PhaseSeed])
	assert.NoError(t, obs.lastErr)
}

func TestSeedSearch_ThirdPointGivesFano(t *testing.T) {
	e := New()
	seeds, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 7, InitialLen: 3, PtUpTo: 3})
	require.NoError(t, err)

	require.Len(t, seeds, 1)
	assert.True(t, seeds[0].Design.IsComplete())
	assert.Equal(t, fingerprintOf(t, e, 7, testutil.FanoLines...), seeds[0].Fingerprint)
}

func TestSeedSearch_DefaultMaxLenRulesOutSmallCounts(t *testing.T) {
	e := New()
	for n := 4; n <= 6; n++ {
		seeds, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: n, InitialLen: 3, PtUpTo: 2})
		require.NoError(t, err)
		assert.Empty(t, seeds, "n=%d", n)
	}
}

func TestSeedSearch_SeedsAreDistinctAndSaturated(t *testing.T) {
	e := New()
	params := SeedParams{NumPoints: 9, MaxLen: 4, InitialLen: 3, PtUpTo: 2}
	seeds, err := e.SeedSearch(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, seeds)

	assertDistinct(t, seeds)
	for i, s := range seeds {
		require.NoError(t, s.Design.Validate())
		assert.True(t, s.Design.IsSaturated(0))
		assert.True(t, s.Design.IsSaturated(1))
		assert.Equal(t, design.Line{0, 1, 2}, s.Design.Line(0))
		assert.GreaterOrEqual(t, s.Design.MinLineLen(), 3)
		assert.LessOrEqual(t, s.Design.MaxLineLen(), 4)
		if i > 0 {
			assert.Greater(t, s.Seq, seeds[i-1].Seq)
		}

		f, err := e.Fingerprint(context.Background(), s.Design)
		require.NoError(t, err)
		assert.Equal(t, f, s.Fingerprint)
	}
}

func TestSeedSearch_Deterministic(t *testing.T) {
	params := SeedParams{NumPoints: 9, MaxLen: 4, InitialLen: 3, PtUpTo: 2}

	a, err := New().SeedSearch(context.Background(), params)
	require.NoError(t, err)
	b, err := New().SeedSearch(context.Background(), params)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Design.LineLists(), b[i].Design.LineLists())
		assert.Equal(t, a[i].Fingerprint, b[i].Fingerprint)
	}
}

func TestSeedSearch_Quota(t *testing.T) {
	e := New(WithMaxSteps(1))
	_, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 7, InitialLen: 3, PtUpTo: 2})

	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
	assert.True(t, IsStepsExceededError(err))
}

func TestSeedSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().SeedSearch(ctx, SeedParams{NumPoints: 7, InitialLen: 3, PtUpTo: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedSearch_OracleFailure(t *testing.T) {
	e := New(WithCanonicalizer(canon.New(failingCanon{})))
	_, err := e.SeedSearch(context.Background(), SeedParams{NumPoints: 7, InitialLen: 3, PtUpTo: 2})

	require.Error(t, err)
	assert.True(t, IsOracleError(err))
}

func TestSeedSearch_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params SeedParams
	}{
		{"no points", SeedParams{NumPoints: 0, InitialLen: 3}},
		{"short initial line", SeedParams{NumPoints: 7, InitialLen: 2}},
		{"initial line too long", SeedParams{NumPoints: 7, InitialLen: 8}},
		{"pt_up_to past end", SeedParams{NumPoints: 7, InitialLen: 3, PtUpTo: 8}},
		{"negative max len", SeedParams{NumPoints: 7, InitialLen: 3, MaxLen: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().SeedSearch(context.Background(), tt.params)
			assert.Error(t, err)
		})
	}
}

func TestEngine_LineTableMemoised(t *testing.T) {
	e := New()
	assert.Same(t, e.LineTable(7, 3), e.LineTable(7, 3))
	assert.NotSame(t, e.LineTable(7, 3), e.LineTable(7, 4))
}

func TestDefaultMaxLen(t *testing.T) {
	assert.Equal(t, 3, DefaultMaxLen(7))
	assert.Equal(t, 4, DefaultMaxLen(9))
	assert.Equal(t, 6, DefaultMaxLen(13))
}

func TestSeedSearch_MaxLenBelowInitialLen(t *testing.T) {
	// Without the length floor, triples could saturate point 0 here.
	seeds, err := New().SeedSearch(context.Background(), SeedParams{NumPoints: 8, MaxLen: 3, InitialLen: 4, PtUpTo: 4})
	require.NoError(t, err)
	assert.Empty(t, seeds)
}
