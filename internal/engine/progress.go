package engine

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Progress logging cadence: every progressEvery pops, and at least every
// progressInterval while a search is busy.
const (
	progressEvery    = 10000
	progressInterval = 5 * time.Second
)

// progress emits periodic debug logs for long searches.
type progress struct {
	phase     Phase
	numPoints int
	steps     int
	sometimes rate.Sometimes
}

func newProgress(phase Phase, numPoints int) *progress {
	return &progress{
		phase:     phase,
		numPoints: numPoints,
		sometimes: rate.Sometimes{First: 1, Every: progressEvery, Interval: progressInterval},
	}
}

// step records one unit of work and maybe logs.
func (p *progress) step(queued, results, lines int) {
	p.steps++
	p.sometimes.Do(func() {
		slog.Debug("search progress",
			"phase", p.phase,
			"n", p.numPoints,
			"steps", p.steps,
			"queued", queued,
			"results", results,
			"lines", lines,
		)
	})
}
