package classify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
)

func newClassifier(opts ...Option) *Classifier {
	return New(engine.New(), opts...)
}

func TestMin3_ThreePoints(t *testing.T) {
	found, err := newClassifier().Min3(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, [][]int{{0, 1, 2}}, found[0].Design.LineLists())
	assert.Equal(t, RegimeMin3, found[0].Regime)
	assert.Equal(t, 3, found[0].NumPoints)
	assert.Equal(t, 3, found[0].MinLineLen())
}

func TestClassify_NoDesignsFourToSix(t *testing.T) {
	c := newClassifier()
	for n := 4; n <= 6; n++ {
		found, err := c.Classify(context.Background(), n)
		require.NoError(t, err)
		assert.Empty(t, found, "n=%d", n)
	}
}

func TestClassify_SevenPointsIsFano(t *testing.T) {
	e := engine.New()
	c := New(e)

	found, err := c.Classify(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, found, 1)
	d := found[0].Design
	assert.True(t, d.IsComplete())
	assert.Equal(t, 7, d.NumLines())
	assert.Equal(t, 3, d.MaxLineLen())
	require.NoError(t, d.Validate())

	fano := design.MustNew(7,
		[]int{0, 1, 2}, []int{0, 3, 4}, []int{0, 5, 6}, []int{1, 3, 5},
		[]int{1, 4, 6}, []int{2, 3, 6}, []int{2, 4, 5},
	)
	f, err := e.Fingerprint(context.Background(), fano)
	require.NoError(t, err)
	assert.Equal(t, f, found[0].Fingerprint)
}

func TestMin4Plus_RegimeBounds(t *testing.T) {
	c := newClassifier()
	for _, n := range []int{7, 8, 9} {
		found, err := c.Min4Plus(context.Background(), n)
		require.NoError(t, err)
		assert.Empty(t, found, "n=%d", n)
	}
}

func TestMin4Plus_ThirteenPoints(t *testing.T) {
	e := engine.New()
	found, err := New(e).Min4Plus(context.Background(), 13)
	require.NoError(t, err)

	require.Len(t, found, 1, "the projective plane of order 3 is the only design")
	f := found[0]
	d := f.Design
	require.NoError(t, d.Validate())
	assert.Equal(t, RegimeMin4Plus, f.Regime)
	assert.Equal(t, 13, f.NumPoints)
	assert.Equal(t, 13, d.NumLines())
	assert.Equal(t, 4, d.MinLineLen())
	assert.Equal(t, 4, d.MaxLineLen())
	assert.True(t, d.IsComplete())

	// Lines {0,1,3,9}+i mod 13.
	var lines [][]int
	for i := 0; i < 13; i++ {
		lines = append(lines, []int{i, (i + 1) % 13, (i + 3) % 13, (i + 9) % 13})
	}
	want, err := e.Fingerprint(context.Background(), design.MustNew(13, lines...))
	require.NoError(t, err)
	assert.Equal(t, want, f.Fingerprint)
}

func TestWithRegimes(t *testing.T) {
	found, err := newClassifier(WithRegimes(RegimeMin4Plus)).Classify(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, found, "the Fano plane belongs to min3")

	found, err = newClassifier(WithRegimes(RegimeMin3)).Classify(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, RegimeMin3, found[0].Regime)

	_, err = newClassifier(WithRegimes("min5")).Classify(context.Background(), 7)
	assert.ErrorContains(t, err, `unknown regime "min5"`)
}

func TestClassify_NinePoints(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search on nine points")
	}
	found, err := newClassifier().Classify(context.Background(), 9)
	require.NoError(t, err)
	require.NotEmpty(t, found)

	seen := make(map[string]bool)
	affine := 0
	for _, f := range found {
		d := f.Design
		require.NoError(t, d.Validate())
		assert.True(t, d.IsComplete())
		assert.Equal(t, RegimeMin3, f.Regime)
		assert.Equal(t, 3, d.MinLineLen())
		assert.False(t, seen[string(f.Fingerprint)], "duplicate design %v", d)
		seen[string(f.Fingerprint)] = true
		if d.NumLines() == 12 && d.MaxLineLen() == 3 {
			affine++
		}
	}
	assert.Equal(t, 1, affine, "the affine plane of order 3 appears once")
}

func TestClassify_TooFewPoints(t *testing.T) {
	_, err := newClassifier().Classify(context.Background(), 2)
	assert.Error(t, err)
}

func TestClassifyRange_RecordsEachCount(t *testing.T) {
	var got []int
	var sizes []int
	sink := SinkFunc(func(_ context.Context, n int, found []Found) error {
		got = append(got, n)
		sizes = append(sizes, len(found))
		return nil
	})

	sum, err := newClassifier().ClassifyRange(context.Background(), 3, 7, sink)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4, 5, 6, 7}, got)
	assert.Equal(t, []int{1, 0, 0, 0, 1}, sizes)
	assert.Equal(t, map[int]int{3: 1, 4: 0, 5: 0, 6: 0, 7: 1}, sum.Counts)
}

func TestClassifyRange_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	calls := 0
	sink := Sinks(
		SinkFunc(func(context.Context, int, []Found) error { calls++; return nil }),
		SinkFunc(func(context.Context, int, []Found) error { return boom }),
	)

	sum, err := newClassifier().ClassifyRange(context.Background(), 3, 4, sink)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sum.Counts)
}

func TestClassifyRange_InvalidRange(t *testing.T) {
	_, err := newClassifier().ClassifyRange(context.Background(), 5, 4, nil)
	assert.Error(t, err)
	_, err = newClassifier().ClassifyRange(context.Background(), 1, 4, nil)
	assert.Error(t, err)
}

func TestClassify_QuotaPropagates(t *testing.T) {
	c := New(engine.New(engine.WithMaxSteps(1)))
	_, err := c.Classify(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, engine.IsQuotaError(err))
}

func TestClassify_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClassifier().Classify(ctx, 7)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithMaxLineLen(t *testing.T) {
	// No line of four fits in a non-trivial space on seven points, so
	// raising the cap finds nothing new.
	for _, maxLen := range []int{3, 4} {
		found, err := newClassifier(WithMaxLineLen(maxLen)).Classify(context.Background(), 7)
		require.NoError(t, err)
		assert.Len(t, found, 1, "max line length %d", maxLen)
	}
}

func TestClassify_DebugLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := newClassifier().Classify(context.Background(), 7)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "line table built")
	assert.Contains(t, out, "design found")
	assert.Contains(t, out, "regime=min3")
	assert.Contains(t, out, "oracle_calls=")
	assert.Contains(t, out, "cache_hits=")
}
