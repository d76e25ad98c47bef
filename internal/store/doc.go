// Package store provides the SQLite result catalog.
//
// The catalog is append-only:
//   - runs: one row per enumeration run, with its canonical parameters
//   - designs: one row per design found, keyed by run, point count and the
//     content-addressed design ID
//
// # Conventions
//
// Logical ordering:
//   - Rows carry seq INTEGER from the engine's logical clock, never
//     timestamps
//   - Every list query orders by seq ASC, id ASC COLLATE BINARY
//
// Idempotency:
//   - UNIQUE(run_id, num_points, design_id) with ON CONFLICT DO NOTHING,
//     so re-recording a point count is harmless
//
// Canonical encoding:
//   - params and lines are RFC 8785 canonical JSON via package ir
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
