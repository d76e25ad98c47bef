package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexander-cohen/SG-Design-Classification/internal/classify"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
	"github.com/alexander-cohen/SG-Design-Classification/internal/store"
	"github.com/alexander-cohen/SG-Design-Classification/internal/testutil"
)

// Harness is the scenario execution environment.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	runID  string
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a fresh engine
// clock. The returned error reports harness failures (catalog setup,
// assertion plumbing); engine errors land in Result.Err and are checked
// against the scenario's expect_error.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store: st,
		engine: engine.New(
			engine.WithClock(engine.NewClock()),
			engine.WithMaxSteps(scenario.MaxSteps),
		),
		runID:  testutil.ConstantRunID(scenario.RunID).Generate(),
		logger: slog.Default().With("scenario", scenario.Name),
	}

	if err := h.writeRun(ctx, scenario); err != nil {
		return nil, err
	}

	result := NewResult()
	trace := classify.SinkFunc(func(_ context.Context, n int, found []classify.Found) error {
		for _, f := range found {
			result.AddDesignTrace(f)
		}
		result.Counts[n] = len(found)
		return nil
	})

	opts := append([]classify.Option{classify.WithMaxLineLen(scenario.MaxLineLen)}, scenario.regimeOptions()...)
	c := classify.New(h.engine, opts...)
	_, result.Err = c.ClassifyRange(ctx, scenario.Points.Min, scenario.Points.Max,
		classify.Sinks(trace, st.Sink(h.runID)))
	h.logger.Debug("scenario classified", "designs", len(result.Trace), "err", result.Err)

	h.checkError(scenario.ExpectError, result)

	actx := &AssertionContext{
		Ctx:    ctx,
		Store:  st,
		Engine: h.engine,
		RunID:  h.runID,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) writeRun(ctx context.Context, s *Scenario) error {
	run := store.Run{
		ID: h.runID,
		Params: ir.IRObject{
			"scenario":     ir.IRString(s.Name),
			"min_points":   ir.IRInt(s.Points.Min),
			"max_points":   ir.IRInt(s.Points.Max),
			"max_line_len": ir.IRInt(s.MaxLineLen),
			"max_steps":    ir.IRInt(s.MaxSteps),
		},
		Seq: h.engine.Clock().Current(),
	}
	if err := h.store.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("failed to write run: %w", err)
	}
	return nil
}

func (h *Harness) checkError(expect string, result *Result) {
	if expect == "" {
		if result.Err != nil {
			result.AddError(fmt.Sprintf("run failed: %v", result.Err))
		}
		return
	}
	var rerr *engine.RuntimeError
	switch {
	case result.Err == nil:
		result.AddError(fmt.Sprintf("expected error %s, run succeeded", expect))
	case !errors.As(result.Err, &rerr):
		result.AddError(fmt.Sprintf("expected error %s, got %v", expect, result.Err))
	case string(rerr.Code) != expect:
		result.AddError(fmt.Sprintf("expected error %s, got %s", expect, rerr.Code))
	}
}
