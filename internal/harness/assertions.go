package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
	"github.com/alexander-cohen/SG-Design-Classification/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Designs relevant to the failure
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nDesigns:\n")
		for i, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] n=%d %s %v\n", i+1, ev.NumPoints, ev.Regime, ev.Lines)
		}
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the trace.
type AssertionContext struct {
	Ctx    context.Context
	Store  *store.Store
	Engine *engine.Engine
	RunID  string
}

// EvaluateAssertions runs every assertion and returns the failure messages.
// Assertions are independent; all of them run even after a failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertDesignCount:
		return assertDesignCount(result, a)
	case AssertContainsDesign:
		return assertContainsDesign(result, a, actx)
	case AssertCatalogCount:
		return assertCatalogCount(a, actx)
	case AssertWellFormed:
		return assertWellFormed(result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertDesignCount checks the number of designs on a point count.
func assertDesignCount(result *Result, a Assertion) error {
	got := result.Designs(a.Points, a.Regime)
	if len(got) == a.Count {
		return nil
	}
	what := fmt.Sprintf("%d designs on %d points", a.Count, a.Points)
	if a.Regime != "" {
		what += " (" + a.Regime + ")"
	}
	return &AssertionError{
		Type:     AssertDesignCount,
		Expected: what,
		Actual:   fmt.Sprintf("%d designs", len(got)),
		Trace:    got,
	}
}

// assertContainsDesign fingerprints the expected lines and looks for a
// design with the same fingerprint, so any labeling of the design matches.
func assertContainsDesign(result *Result, a Assertion, actx *AssertionContext) error {
	want, err := design.New(a.Points, a.Lines...)
	if err != nil {
		return fmt.Errorf("expected design: %w", err)
	}
	f, err := actx.Engine.Fingerprint(actx.Ctx, want)
	if err != nil {
		return fmt.Errorf("fingerprint expected design: %w", err)
	}

	got := result.Designs(a.Points, a.Regime)
	for _, ev := range got {
		if ev.fingerprint == string(f) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertContainsDesign,
		Expected: fmt.Sprintf("a design isomorphic to %v", a.Lines),
		Actual:   "not found",
		Trace:    got,
	}
}

// assertCatalogCount checks the rows catalogued for a point count.
func assertCatalogCount(a Assertion, actx *AssertionContext) error {
	counts, err := actx.Store.CountDesigns(actx.Ctx, actx.RunID)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if counts[a.Points] != a.Count {
		return &AssertionError{
			Type:     AssertCatalogCount,
			Expected: fmt.Sprintf("%d rows on %d points", a.Count, a.Points),
			Actual:   fmt.Sprintf("%d rows", counts[a.Points]),
		}
	}
	return nil
}

// assertWellFormed checks every design is a non-trivial linear space and
// that fingerprints are unique per point count.
func assertWellFormed(result *Result) error {
	seen := make(map[string]int)
	for i, ev := range result.Trace {
		switch {
		case !ev.Complete:
			return wellFormedError("every pair covered", "incomplete design", ev)
		case ev.MinLineLen < 3:
			return wellFormedError("lines of at least 3 points", fmt.Sprintf("line of %d points", ev.MinLineLen), ev)
		}
		key := fmt.Sprintf("%d/%s", ev.NumPoints, ev.fingerprint)
		if j, dup := seen[key]; dup {
			return &AssertionError{
				Type:     AssertWellFormed,
				Expected: "pairwise non-isomorphic designs",
				Actual:   fmt.Sprintf("designs %d and %d are isomorphic", j+1, i+1),
				Trace:    []TraceEvent{result.Trace[j], ev},
			}
		}
		seen[key] = i
	}
	return nil
}

func wellFormedError(expected, actual string, ev TraceEvent) error {
	return &AssertionError{
		Type:     AssertWellFormed,
		Expected: expected,
		Actual:   actual,
		Trace:    []TraceEvent{ev},
	}
}
