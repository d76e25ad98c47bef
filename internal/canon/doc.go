// Package canon computes isomorphism-invariant fingerprints of designs.
//
// A design is turned into its coloured bipartite incidence graph (points in
// colour class 0, one vertex per line in colour class 1, an edge for every
// incidence) and handed to an Oracle that returns a canonical certificate.
// Equal fingerprints mean isomorphic incidence structures; the fingerprint
// is the deduplication key for every search in the engine.
//
// Refiner is the default Oracle: individualization-refinement over colour
// refined ordered partitions, keeping the least leaf certificate. Search
// trees are pruned by twin vertices and by automorphisms found along the
// way, which keeps partial designs with many interchangeable points cheap.
//
// Any deterministic, isomorphism-invariant Oracle can be substituted.
package canon
