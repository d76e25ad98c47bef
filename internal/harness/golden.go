package harness

import (
	"context"
	"strconv"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// TraceSnapshot captures what a scenario found, in a form that is stable
// across runs: design IDs and seqs are left out so the snapshot does not
// depend on certificate layout or clock stepping.
type TraceSnapshot struct {
	ScenarioName string
	Counts       map[int]int
	Trace        []TraceEvent
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	designs := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		designs[i] = map[string]any{
			"num_points":   ev.NumPoints,
			"regime":       ev.Regime,
			"lines":        ev.Lines,
			"num_lines":    ev.NumLines,
			"min_line_len": ev.MinLineLen,
		}
	}

	counts := make(map[string]any, len(s.Counts))
	for n, c := range s.Counts {
		counts[strconv.Itoa(n)] = c
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"counts":        counts,
		"designs":       designs,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can check Pass as well.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Counts:       result.Counts,
		Trace:        result.Trace,
	}

	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
