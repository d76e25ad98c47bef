// Package ir provides the canonical serialization and identity layer for
// design enumeration results.
//
// All other internal packages may import ir; ir imports nothing internal.
// It owns two things:
//   - RFC 8785 canonical JSON for the few value shapes results use (integers,
//     strings, booleans, arrays, objects). Canonical bytes are what gets
//     hashed, written to result files and stored in the catalog.
//   - Domain-separated SHA-256 identities (design IDs, parameter hashes).
//
// Key constraints:
//   - NO float types anywhere - use int64 for numbers
//   - Object keys sorted by UTF-16 code units
//   - All JSON tags use snake_case
package ir
