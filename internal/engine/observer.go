package engine

import "time"

// Phase names a search operation.
type Phase string

const (
	PhaseSeed     Phase = "seed"
	PhaseSaturate Phase = "saturate"
	PhaseComplete Phase = "complete"
)

// Observer receives search events. Implement it to export metrics; see
// package metrics for the Prometheus implementation.
//
// Callbacks run on the search goroutine and must be cheap.
type Observer interface {
	// FrontierPopped is called for every seed-search pop with the number
	// of items still queued.
	FrontierPopped(queued int)

	// FingerprintComputed is called after every oracle call or cache hit.
	FingerprintComputed(phase Phase)

	// BranchSpawned is called when a seed-search candidate produced an
	// unseen fingerprint.
	BranchSpawned()

	// CoverFound is called for every exact cover consumed.
	CoverFound(phase Phase)

	// ResultRecorded is called for every design an operation returns.
	ResultRecorded(phase Phase)

	// SearchFinished is called when an operation ends, successfully or not.
	SearchFinished(phase Phase, results int, elapsed time.Duration, err error)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) FrontierPopped(int)                                {}
func (NoopObserver) FingerprintComputed(Phase)                         {}
func (NoopObserver) BranchSpawned()                                    {}
func (NoopObserver) CoverFound(Phase)                                  {}
func (NoopObserver) ResultRecorded(Phase)                              {}
func (NoopObserver) SearchFinished(Phase, int, time.Duration, error) {}
