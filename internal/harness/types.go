package harness

import "github.com/alexander-cohen/SG-Design-Classification/internal/classify"

// TraceEvent is one design recorded during a scenario run.
type TraceEvent struct {
	NumPoints   int     `json:"num_points"`
	Regime      string  `json:"regime"`
	DesignID    string  `json:"design_id"`
	Lines       [][]int `json:"lines"`
	MinLineLen  int     `json:"min_line_len"`
	NumLines    int     `json:"num_lines"`
	Complete    bool    `json:"complete"`
	Seq         int64   `json:"seq"`
	fingerprint string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Trace lists every design in the order the classifier recorded it.
	Trace []TraceEvent `json:"trace"`

	// Counts maps point count to number of designs.
	Counts map[int]int `json:"counts"`

	// Err is the error the run stopped with, if any.
	Err error `json:"-"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Counts: make(map[int]int),
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddDesignTrace appends a classified design to the trace.
func (r *Result) AddDesignTrace(f classify.Found) {
	r.Trace = append(r.Trace, TraceEvent{
		NumPoints:   f.NumPoints,
		Regime:      string(f.Regime),
		DesignID:    f.Fingerprint.ID(),
		Lines:       f.Design.LineLists(),
		MinLineLen:  f.MinLineLen(),
		NumLines:    f.Design.NumLines(),
		Complete:    f.Design.IsComplete(),
		Seq:         f.Seq,
		fingerprint: string(f.Fingerprint),
	})
}

// Designs returns the trace events for n points, optionally restricted to
// one regime.
func (r *Result) Designs(n int, regime string) []TraceEvent {
	var out []TraceEvent
	for _, ev := range r.Trace {
		if ev.NumPoints == n && (regime == "" || ev.Regime == regime) {
			out = append(out, ev)
		}
	}
	return out
}
