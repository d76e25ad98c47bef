package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// WriteRun inserts a run.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	params := run.Params
	if params == nil {
		params = ir.IRObject{}
	}
	paramsJSON, err := ir.MarshalCanonical(params)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if run.ParamsHash == "" {
		run.ParamsHash, err = ir.ParamsHash(params)
		if err != nil {
			return fmt.Errorf("write run: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, params, params_hash, seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		string(paramsJSON),
		run.ParamsHash,
		run.Seq,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteDesign inserts a design record.
// Uses ON CONFLICT DO NOTHING: recording the same design twice for a run
// and point count is a no-op. The run must exist (foreign key constraint).
func (s *Store) WriteDesign(ctx context.Context, rec Record) error {
	return writeDesign(ctx, s.db, rec)
}

// WriteDesigns inserts records in one transaction.
func (s *Store) WriteDesigns(ctx context.Context, recs []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write designs: %w", err)
	}
	for _, rec := range recs {
		if err := writeDesign(ctx, tx, rec); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write designs: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeDesign(ctx context.Context, db execer, rec Record) error {
	linesJSON, err := ir.MarshalCanonical(rec.Lines)
	if err != nil {
		return fmt.Errorf("write design: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO designs
		(id, run_id, num_points, regime, min_line_len, num_lines, design_id, certificate, lines, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.key(),
		rec.RunID,
		rec.NumPoints,
		rec.Regime,
		minLineLen(rec.Lines),
		len(rec.Lines),
		rec.DesignID,
		rec.Certificate,
		string(linesJSON),
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("write design: %w", err)
	}
	return nil
}
