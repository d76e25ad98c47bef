package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// ListingName returns the listing file name for n points.
func ListingName(n int) string {
	return fmt.Sprintf("all_unique_sg_%d.txt", n)
}

// DataName returns the data file name for n points.
func DataName(n int, c Compression) string {
	return fmt.Sprintf("all_unique_sg_%d.json%s", n, c.Ext())
}

// ParseDataName extracts the point count from a data file name written by
// Writer, with or without a directory or compression suffix.
func ParseDataName(path string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(filepath.Base(path), "all_unique_sg_%d.json", &n); err != nil {
		return 0, false
	}
	return n, true
}

// WriteListing writes the human-readable listing: a header, then each
// design's lines one per row, each design followed by a blank row.
func WriteListing(w io.Writer, n int, designs []*design.Design) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# n=%d designs=%d\n\n", n, len(designs))
	for _, d := range designs {
		for i := 0; i < d.NumLines(); i++ {
			fmt.Fprintln(bw, d.Line(i).String())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// MarshalDesigns encodes designs as a canonical JSON array of line lists.
func MarshalDesigns(designs []*design.Design) ([]byte, error) {
	lists := make([][][]int, len(designs))
	for i, d := range designs {
		lists[i] = d.LineLists()
	}
	return ir.MarshalLineLists(lists)
}

// UnmarshalDesigns decodes MarshalDesigns output into designs on n points,
// replaying AddLine in stored order.
func UnmarshalDesigns(data []byte, n int) ([]*design.Design, error) {
	lists, err := ir.UnmarshalLineLists(data)
	if err != nil {
		return nil, err
	}
	designs := make([]*design.Design, len(lists))
	for i, lines := range lists {
		d, err := design.New(n, lines...)
		if err != nil {
			return nil, fmt.Errorf("design[%d]: %w", i, err)
		}
		designs[i] = d
	}
	return designs, nil
}

// Load reads a data file written by Writer and reconstructs its designs
// on n points. Compression is inferred from the file extension.
func Load(path string, n int) ([]*design.Design, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	data, err := decompress(raw, compressionFromName(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	designs, err := UnmarshalDesigns(data, n)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return designs, nil
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
