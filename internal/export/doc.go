// Package export writes and reads per-point-count result files.
//
// For n points a run writes all_unique_sg_{n}.txt, a listing for people,
// and all_unique_sg_{n}.json (optionally .zst or .lz4), the canonical JSON
// array of line lists that downstream tools reload. A manifest.yaml in the
// same directory summarises the run.
//
// Loading replays AddLine for every stored line in stored order, so a file
// that breaks the linear-space axiom is rejected.
package export
