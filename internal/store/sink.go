package store

import (
	"context"

	"github.com/alexander-cohen/SG-Design-Classification/internal/classify"
)

// Sink returns a classify.Sink that catalogues every design under runID.
// Each point count is written in one transaction.
func (s *Store) Sink(runID string) classify.Sink {
	return classify.SinkFunc(func(ctx context.Context, n int, found []classify.Found) error {
		recs := make([]Record, len(found))
		for i, f := range found {
			recs[i] = FromFound(runID, f)
		}
		return s.WriteDesigns(ctx, recs)
	})
}

// FromFound converts a classified design to a catalog record.
func FromFound(runID string, f classify.Found) Record {
	return Record{
		RunID:       runID,
		NumPoints:   f.NumPoints,
		Regime:      string(f.Regime),
		DesignID:    f.Fingerprint.ID(),
		Certificate: f.Fingerprint.Bytes(),
		Lines:       f.Design.LineLists(),
		Seq:         f.Seq,
	}
}
