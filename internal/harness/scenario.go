package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexander-cohen/SG-Design-Classification/internal/classify"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Points is the inclusive range of point counts to classify.
	Points PointRange `yaml:"points"`

	// MaxLineLen caps line length; 0 keeps engine.DefaultMaxLen.
	MaxLineLen int `yaml:"max_line_len,omitempty"`

	// Regimes restricts the classifier to these regimes; empty runs both.
	Regimes []string `yaml:"regimes,omitempty"`

	// MaxSteps caps frontier pops per search; 0 is unbounded.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// RunID is the catalog run ID. Defaults to "harness-run".
	RunID string `yaml:"run_id,omitempty"`

	// ExpectError is the engine error code the run must stop with.
	// Empty means the run must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the designs found.
	Assertions []Assertion `yaml:"assertions"`
}

// PointRange is an inclusive range of point counts.
type PointRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Assertion validates the trace or the catalog.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Points selects the point count (design_count, contains_design,
	// catalog_count).
	Points int `yaml:"points,omitempty"`

	// Regime optionally restricts design_count and contains_design.
	Regime string `yaml:"regime,omitempty"`

	// Count is the expected number of designs or rows.
	Count int `yaml:"count,omitempty"`

	// Lines is the expected design, matched up to isomorphism.
	Lines [][]int `yaml:"lines,omitempty"`
}

// Assertion type constants.
const (
	AssertDesignCount    = "design_count"
	AssertContainsDesign = "contains_design"
	AssertCatalogCount   = "catalog_count"
	AssertWellFormed     = "well_formed"
)

const defaultRunID = "harness-run"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if scenario.RunID == "" {
		scenario.RunID = defaultRunID
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Points.Min < classify.MinPoints {
		return fmt.Errorf("points.min must be at least %d", classify.MinPoints)
	}
	if s.Points.Max < s.Points.Min {
		return fmt.Errorf("points.max must be at least points.min")
	}

	if s.MaxLineLen != 0 && s.MaxLineLen < 3 {
		return fmt.Errorf("max_line_len must be 0 or at least 3")
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative")
	}

	for i, r := range s.Regimes {
		if !knownRegime(r) || r == "" {
			return fmt.Errorf("regimes[%d]: unknown regime %q", i, r)
		}
	}

	switch engine.RuntimeErrorCode(s.ExpectError) {
	case "", engine.ErrCodeInvariantViolation, engine.ErrCodeOracleFailure, engine.ErrCodeQuotaExceeded:
	default:
		return fmt.Errorf("unknown expect_error %q", s.ExpectError)
	}

	if len(s.Assertions) == 0 && s.ExpectError == "" {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Points); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, points PointRange) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	inRange := func() error {
		if a.Points < points.Min || a.Points > points.Max {
			return fmt.Errorf("assertions[%d]: points %d outside [%d, %d]", index, a.Points, points.Min, points.Max)
		}
		return nil
	}
	checkRegime := func() error {
		if knownRegime(a.Regime) {
			return nil
		}
		return fmt.Errorf("assertions[%d]: unknown regime %q", index, a.Regime)
	}

	switch a.Type {
	case AssertDesignCount:
		if err := inRange(); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for design_count", index)
		}
		return checkRegime()
	case AssertContainsDesign:
		if err := inRange(); err != nil {
			return err
		}
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines are required for contains_design", index)
		}
		return checkRegime()
	case AssertCatalogCount:
		if err := inRange(); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for catalog_count", index)
		}
	case AssertWellFormed:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// knownRegime reports whether r names a regime; empty means any.
func knownRegime(r string) bool {
	switch classify.Regime(r) {
	case "", classify.RegimeMin3, classify.RegimeMin4Plus:
		return true
	}
	return false
}

// regimeOptions converts the scenario's regimes to a classifier option.
func (s *Scenario) regimeOptions() []classify.Option {
	if len(s.Regimes) == 0 {
		return nil
	}
	regimes := make([]classify.Regime, len(s.Regimes))
	for i, r := range s.Regimes {
		regimes[i] = classify.Regime(r)
	}
	return []classify.Option{classify.WithRegimes(regimes...)}
}
