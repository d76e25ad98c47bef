package testutil

// ConstantRunID returns the same run ID on every call.
//
// Unlike engine.FixedGenerator, which hands out IDs in sequence and panics
// when exhausted, this suits tests that may generate any number of IDs.
//
// Thread-safety: ConstantRunID is stateless and safe for concurrent use.
type ConstantRunID string

// Generate implements engine.RunIDGenerator.
func (c ConstantRunID) Generate() string {
	if c == "" {
		return "test-run-default"
	}
	return string(c)
}
