package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// File describes the files written for one point count.
type File struct {
	NumPoints int    `yaml:"num_points" json:"num_points"`
	Designs   int    `yaml:"designs" json:"designs"`
	Listing   string `yaml:"listing" json:"listing"`
	Data      string `yaml:"data" json:"data"`
	// Bytes is the size of the data file as written.
	Bytes int `yaml:"bytes" json:"bytes"`
}

// Writer writes result files into a directory.
type Writer struct {
	dir         string
	compression Compression
}

// NewWriter creates a Writer. The directory is created on first write.
func NewWriter(dir string, c Compression) *Writer {
	if c == "" {
		c = CompressionNone
	}
	return &Writer{dir: dir, compression: c}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Compression returns the data file compression.
func (w *Writer) Compression() Compression { return w.compression }

// Write writes the listing and data files for n points.
func (w *Writer) Write(n int, designs []*design.Design) (File, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return File{}, fmt.Errorf("write results n=%d: %w", n, err)
	}

	var listing bytes.Buffer
	if err := WriteListing(&listing, n, designs); err != nil {
		return File{}, fmt.Errorf("write listing n=%d: %w", n, err)
	}
	listingName := ListingName(n)
	if err := writeFileAtomic(filepath.Join(w.dir, listingName), listing.Bytes()); err != nil {
		return File{}, fmt.Errorf("write listing n=%d: %w", n, err)
	}

	raw, err := MarshalDesigns(designs)
	if err != nil {
		return File{}, fmt.Errorf("write data n=%d: %w", n, err)
	}
	data, err := compress(raw, w.compression)
	if err != nil {
		return File{}, fmt.Errorf("write data n=%d: %w", n, err)
	}
	dataName := DataName(n, w.compression)
	if err := writeFileAtomic(filepath.Join(w.dir, dataName), data); err != nil {
		return File{}, fmt.Errorf("write data n=%d: %w", n, err)
	}

	return File{
		NumPoints: n,
		Designs:   len(designs),
		Listing:   listingName,
		Data:      dataName,
		Bytes:     len(data),
	}, nil
}
