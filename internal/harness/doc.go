// Package harness provides conformance testing for the classifier.
//
// A scenario names a range of point counts, runs the full classification
// over it against a fresh in-memory catalog, and checks the designs found
// with declarative assertions. Scenarios double as executable records of
// known results (one design on 3 points, none on 4 to 6, the Fano plane on 7).
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	points: { min: 3, max: 7 }
//	max_line_len: 0        # optional, 0 derives floor((n-1)/2)
//	regimes: [min3]        # optional, empty runs min3 and min4plus
//	max_steps: 0           # optional, 0 is unbounded
//	run_id: fixed-run      # optional
//	expect_error: ""       # optional engine error code
//	assertions:
//	  - type: design_count
//	    points: 7
//	    regime: min3
//	    count: 1
//	  - type: contains_design
//	    points: 7
//	    lines: [[0,1,2],[0,3,4],[0,5,6],[1,3,5],[1,4,6],[2,3,6],[2,4,5]]
//	  - type: catalog_count
//	    points: 7
//	    count: 1
//	  - type: well_formed
//
// # Assertion Types
//
//   - design_count: number of designs on a point count, optionally per regime
//   - contains_design: a design isomorphic to the given lines was found
//   - catalog_count: number of catalogued rows for a point count
//   - well_formed: every design is complete, has lines of at least three
//     points, and no two designs share a fingerprint
//
// # Deterministic Testing
//
// Each scenario runs with a fresh engine clock, a constant run ID and an
// in-memory SQLite database, so two runs of one scenario produce identical
// traces. RunWithGolden compares the trace against testdata/golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/fano.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
