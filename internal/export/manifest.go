package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file name inside an output directory.
const ManifestName = "manifest.yaml"

// Manifest summarises a run's output directory.
type Manifest struct {
	RunID       string      `yaml:"run_id"`
	ParamsHash  string      `yaml:"params_hash,omitempty"`
	Compression Compression `yaml:"compression"`
	Files       []File      `yaml:"files"`
}

// Add records f, replacing any entry for the same point count, and keeps
// entries ordered by point count.
func (m *Manifest) Add(f File) {
	m.Files = slices.DeleteFunc(m.Files, func(o File) bool { return o.NumPoints == f.NumPoints })
	m.Files = append(m.Files, f)
	slices.SortFunc(m.Files, func(a, b File) int { return a.NumPoints - b.NumPoints })
}

// Lookup returns the entry for n points.
func (m *Manifest) Lookup(n int) (File, bool) {
	for _, f := range m.Files {
		if f.NumPoints == n {
			return f, true
		}
	}
	return File{}, false
}

// WriteManifest writes m to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, ManifestName), data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads dir/manifest.yaml.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
