package canon

import (
	"context"
	"strings"

	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
)

// Fingerprint is an opaque canonical certificate. It is comparable and
// totally ordered; equal fingerprints mean isomorphic coloured graphs.
type Fingerprint string

// Bytes returns the raw certificate.
func (f Fingerprint) Bytes() []byte { return []byte(f) }

// ID returns the content-addressed design ID for this certificate.
func (f Fingerprint) ID() string { return ir.DesignID([]byte(f)) }

// Short returns a 12 character prefix of ID, for logs.
func (f Fingerprint) Short() string { return f.ID()[:12] }

// Compare orders fingerprints bytewise.
func (f Fingerprint) Compare(o Fingerprint) int { return strings.Compare(string(f), string(o)) }

// Oracle computes canonical fingerprints of coloured graphs.
//
// Implementations must be deterministic and isomorphism-invariant: two
// graphs get equal fingerprints iff some colour-preserving bijection maps
// one onto the other.
type Oracle interface {
	Canonicalize(ctx context.Context, g *Graph) (Fingerprint, error)
}

// FingerprintSet is an explicitly scoped deduplication set. Searches that
// must share dedup state receive the same set; searches that must not get
// separate ones.
//
// Not safe for concurrent use.
type FingerprintSet struct {
	m map[Fingerprint]struct{}
}

// NewFingerprintSet creates an empty set.
func NewFingerprintSet() *FingerprintSet {
	return &FingerprintSet{m: make(map[Fingerprint]struct{})}
}

// Add inserts f and reports whether it was not already present.
func (s *FingerprintSet) Add(f Fingerprint) bool {
	if _, ok := s.m[f]; ok {
		return false
	}
	s.m[f] = struct{}{}
	return true
}

// Has reports whether f is present.
func (s *FingerprintSet) Has(f Fingerprint) bool {
	_, ok := s.m[f]
	return ok
}

// Len returns the number of fingerprints.
func (s *FingerprintSet) Len() int { return len(s.m) }
