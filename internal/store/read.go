package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// ReadRun returns the run with the given ID, or ErrNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, params, params_hash, seq
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

// LatestRun returns the run with the highest seq, or ErrNotFound.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, params, params_hash, seq
		FROM runs
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`)
	return scanRun(row)
}

func scanRun(row *sql.Row) (Run, error) {
	var (
		run        Run
		paramsJSON string
	)
	if err := row.Scan(&run.ID, &paramsJSON, &run.ParamsHash, &run.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	v, err := ir.UnmarshalIRValue([]byte(paramsJSON))
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return Run{}, fmt.Errorf("scan run %s: params is %T, want object", run.ID, v)
	}
	run.Params = obj
	return run, nil
}

// ReadDesigns returns the designs of a run for n points.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadDesigns(ctx context.Context, runID string, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, num_points, regime, design_id, certificate, lines, seq
		FROM designs
		WHERE run_id = ? AND num_points = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		var (
			rec       Record
			linesJSON string
		)
		if err := rows.Scan(&rec.RunID, &rec.NumPoints, &rec.Regime, &rec.DesignID, &rec.Certificate, &linesJSON, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		rec.Lines, err = ir.UnmarshalLineList([]byte(linesJSON))
		if err != nil {
			return nil, fmt.Errorf("scan design %s: %w", rec.DesignID, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate designs: %w", err)
	}
	return recs, nil
}

// CountDesigns returns the number of designs per point count for a run.
func (s *Store) CountDesigns(ctx context.Context, runID string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT num_points, COUNT(*)
		FROM designs
		WHERE run_id = ?
		GROUP BY num_points
		ORDER BY num_points ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("count designs: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var n, c int
		if err := rows.Scan(&n, &c); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[n] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// MaxSeq returns the highest seq across runs and designs, or 0 for an
// empty catalog. A new run continues its logical clock from here.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(seq) FROM runs), 0),
			COALESCE((SELECT MAX(seq) FROM designs), 0)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return seq, nil
}
