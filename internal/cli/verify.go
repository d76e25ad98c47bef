package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Points int
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <data-file>",
		Short: "Check the designs in a data file",
		Long: `Check every design in a data file:

  - it is a linear space: no pair of points on two lines
  - it is complete: every pair of points on a line
  - every line has at least three points
  - no two designs are isomorphic

Exits with status 1 if any check fails.

Example:
  sgdesign verify out/all_unique_sg_9.json.zst`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Points, "points", "n", 0, "number of points (default: from file name)")

	return cmd
}

// VerifyProblem is one failed check.
type VerifyProblem struct {
	Design  int    `json:"design"`
	Message string `json:"message"`
}

// VerifyResult is the verify command's output.
type VerifyResult struct {
	File      string          `json:"file"`
	NumPoints int             `json:"num_points"`
	Designs   int             `json:"designs"`
	Problems  []VerifyProblem `json:"problems"`
}

// OK reports whether every check passed.
func (r VerifyResult) OK() bool { return len(r.Problems) == 0 }

// RenderText implements textRenderer.
func (r VerifyResult) RenderText(w io.Writer) error {
	for _, p := range r.Problems {
		fmt.Fprintf(w, "design %d: %s\n", p.Design, p.Message)
	}
	status := "ok"
	if !r.OK() {
		status = "FAILED"
	}
	fmt.Fprintf(w, "%s: n=%d designs=%d problems=%d %s\n", r.File, r.NumPoints, r.Designs, len(r.Problems), status)
	return nil
}

func runVerify(opts *VerifyOptions, path string, cmd *cobra.Command) error {
	n, designs, err := loadDataFile(path, opts.Points)
	if err != nil {
		return err
	}

	res := VerifyResult{File: path, NumPoints: n, Designs: len(designs), Problems: []VerifyProblem{}}
	eng := engine.New()
	seen := make(map[canon.Fingerprint]int, len(designs))
	for i, d := range designs {
		if err := d.Validate(); err != nil {
			res.Problems = append(res.Problems, VerifyProblem{i, err.Error()})
			continue
		}
		if !d.IsComplete() {
			res.Problems = append(res.Problems, VerifyProblem{i, "not complete: some pair lies on no line"})
		}
		if m := d.MinLineLen(); m < 3 {
			res.Problems = append(res.Problems, VerifyProblem{i, fmt.Sprintf("shortest line has %d points", m)})
		}
		fp, err := eng.Fingerprint(cmd.Context(), d)
		if err != nil {
			return WrapExitError(ExitFailure, "fingerprint failed", err)
		}
		if j, dup := seen[fp]; dup {
			res.Problems = append(res.Problems, VerifyProblem{i, fmt.Sprintf("isomorphic to design %d", j)})
			continue
		}
		seen[fp] = i
	}

	if err := opts.formatter(cmd).Success(res); err != nil {
		return err
	}
	if !res.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problems in %s", len(res.Problems), path))
	}
	return nil
}
