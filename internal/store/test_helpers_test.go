package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testRecord(runID string, n int, designID string, seq int64, lines [][]int) Record {
	return Record{
		RunID:       runID,
		NumPoints:   n,
		Regime:      "min3",
		DesignID:    designID,
		Certificate: []byte("cert-" + designID),
		Lines:       lines,
		Seq:         seq,
	}
}
