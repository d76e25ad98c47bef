// Package engine implements the two search phases of design enumeration.
//
// ARCHITECTURE:
//
// Seed Search:
// SeedSearch saturates points 0, 1, ..., PtUpTo-1 in turn, trying lines
// through the current point from the longest permitted length down to the
// shortest. Work items live on a double-ended frontier:
//   - front pushes continue deciding options for the same point and length
//     (depth-first)
//   - back pushes defer a newly spawned non-isomorphic branch, or a branch
//     that has settled its point or exhausted a length
//
// A single FingerprintSet owned by the search is the complete dedup table:
// a candidate branch is spawned only if the fingerprint of the design with
// the candidate line added has never been seen in this search.
//
// Completion:
// EnumerateSaturations covers every missing pair through one point and
// AllFullCompletions covers every missing pair in the design. Both hand an
// exact-cover problem to a cover.Oracle through a cover.Adapter and dedup
// the resulting designs against a caller-owned FingerprintSet.
//
// Determinism:
// Candidate lines are produced in lexicographic order, the frontier is
// processed strictly sequentially, and results are stamped with a logical
// Clock. Given deterministic oracles every run produces identical output.
//
// Bounded execution:
// Context cancellation is checked on every frontier pop and between covers.
// WithMaxSteps caps the number of pops and covers per operation.
package engine
