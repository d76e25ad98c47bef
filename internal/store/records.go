package store

import (
	"fmt"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// Run is one enumeration run.
type Run struct {
	ID string
	// Params holds the settings the run was started with.
	Params ir.IRObject
	// ParamsHash is filled in by WriteRun when empty.
	ParamsHash string
	Seq        int64
}

// Record is one catalogued design.
type Record struct {
	RunID       string
	NumPoints   int
	Regime      string
	DesignID    string
	Certificate []byte
	Lines       [][]int
	Seq         int64
}

// key is the primary key of a design row.
func (r Record) key() string {
	return fmt.Sprintf("%s/%d/%s", r.RunID, r.NumPoints, r.DesignID)
}

// Design rebuilds the design by replaying AddLine in stored order.
func (r Record) Design() (*design.Design, error) {
	d, err := design.New(r.NumPoints, r.Lines...)
	if err != nil {
		return nil, fmt.Errorf("design %s: %w", r.DesignID, err)
	}
	return d, nil
}

func minLineLen(lines [][]int) int {
	m := 0
	for _, l := range lines {
		if m == 0 || len(l) < m {
			m = len(l)
		}
	}
	return m
}
