package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteListing_Golden(t *testing.T) {
	g := newGoldie(t)

	var buf bytes.Buffer
	require.NoError(t, WriteListing(&buf, 7, []*design.Design{testutil.Fano()}))
	g.Assert(t, "listing_fano", buf.Bytes())

	buf.Reset()
	require.NoError(t, WriteListing(&buf, 9, nil))
	g.Assert(t, "listing_empty", buf.Bytes())
}

func TestMarshalDesigns_Golden(t *testing.T) {
	data, err := MarshalDesigns([]*design.Design{
		testutil.Fano(),
		design.MustNew(7, []int{2, 1, 0}),
	})
	require.NoError(t, err)

	newGoldie(t).Assert(t, "data_fano_and_line", data)
}

func TestWriter_RoundTrip(t *testing.T) {
	designs := []*design.Design{
		testutil.Fano(),
		design.MustNew(7, []int{0, 1, 2}, []int{0, 3, 4, 5}),
	}

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			dir := t.TempDir()
			f, err := NewWriter(dir, c).Write(7, designs)
			require.NoError(t, err)

			assert.Equal(t, 2, f.Designs)
			assert.Equal(t, "all_unique_sg_7.txt", f.Listing)
			assert.Equal(t, "all_unique_sg_7.json"+c.Ext(), f.Data)
			assert.FileExists(t, filepath.Join(dir, f.Listing))

			loaded, err := Load(filepath.Join(dir, f.Data), 7)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			for i := range designs {
				assert.Equal(t, designs[i].LineLists(), loaded[i].LineLists())
			}
		})
	}
}

func TestWriter_CompressedIsSmaller(t *testing.T) {
	var designs []*design.Design
	for i := 0; i < 200; i++ {
		designs = append(designs, testutil.Fano())
	}
	dir := t.TempDir()

	plain, err := NewWriter(dir, CompressionNone).Write(7, designs)
	require.NoError(t, err)
	packed, err := NewWriter(dir, CompressionZstd).Write(7, designs)
	require.NoError(t, err)

	assert.Less(t, packed.Bytes, plain.Bytes)
}

func TestLoad_RejectsBrokenDesign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_unique_sg_7.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[[0,1,2],[0,1,3]]]`), 0o644))

	_, err := Load(path, 7)
	assert.ErrorIs(t, err, design.ErrInvariantViolation)
}

func TestLoad_RejectsBadShapes(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"not an array": `{"a":1}`,
		"float point":  `[[[0,1,2.5]]]`,
		"short line":   `[[[0,1]]]`,
		"out of range": `[[[0,1,9]]]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path, 7)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.json"), 7)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	c, err = ParseCompression(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, c)

	_, err = ParseCompression("gzip")
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{RunID: "run-1", Compression: CompressionLZ4}
	m.Add(File{NumPoints: 9, Designs: 1, Listing: ListingName(9), Data: DataName(9, CompressionLZ4)})
	m.Add(File{NumPoints: 7, Designs: 1, Listing: ListingName(7), Data: DataName(7, CompressionLZ4)})
	m.Add(File{NumPoints: 9, Designs: 2, Listing: ListingName(9), Data: DataName(9, CompressionLZ4)})

	require.NoError(t, WriteManifest(dir, m))
	got, err := ReadManifest(dir)
	require.NoError(t, err)

	assert.Equal(t, m, got)
	require.Len(t, got.Files, 2)
	assert.Equal(t, 7, got.Files[0].NumPoints)
	f, ok := got.Lookup(9)
	require.True(t, ok)
	assert.Equal(t, 2, f.Designs)
	assert.Equal(t, "all_unique_sg_9.json.lz4", f.Data)
	_, ok = got.Lookup(8)
	assert.False(t, ok)
}

func TestParseDataName(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"all_unique_sg_7.json", 7, true},
		{"out/all_unique_sg_13.json.zst", 13, true},
		{DataName(9, CompressionLZ4), 9, true},
		{"all_unique_sg_7.txt", 0, false},
		{"results.json", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ParseDataName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
		})
	}
}
