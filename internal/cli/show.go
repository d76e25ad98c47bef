package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/export"
	"github.com/alexander-cohen/SG-Design-Classification/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Points   int
	Database string
	RunID    string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [data-file]",
		Short: "Print the designs in a data file or the catalog",
		Long: `Print a listing of designs, one line per row and a blank row between
designs.

With a data file argument the designs are read from the file; the point
count is taken from the file name unless --points is given. Without an
argument they are read from the catalog for --points, from --run or the
latest run.

Example:
  sgdesign show out/all_unique_sg_7.json
  sgdesign show --db sgdesign.db --points 9`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Points, "points", "n", 0, "number of points")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite result catalog")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID (default: latest run)")

	return cmd
}

// Listing is a set of designs on the same point count.
type Listing struct {
	NumPoints int       `json:"num_points"`
	RunID     string    `json:"run_id,omitempty"`
	Designs   [][][]int `json:"designs"`

	designs []*design.Design
}

// RenderText implements textRenderer.
func (l Listing) RenderText(w io.Writer) error {
	return export.WriteListing(w, l.NumPoints, l.designs)
}

func newListing(n int, runID string, designs []*design.Design) Listing {
	l := Listing{NumPoints: n, RunID: runID, Designs: make([][][]int, len(designs)), designs: designs}
	for i, d := range designs {
		l.Designs[i] = d.LineLists()
	}
	return l
}

func runShow(opts *ShowOptions, args []string, cmd *cobra.Command) error {
	if len(args) == 1 {
		n, designs, err := loadDataFile(args[0], opts.Points)
		if err != nil {
			return err
		}
		return opts.formatter(cmd).Success(newListing(n, "", designs))
	}

	if opts.Database == "" || opts.Points == 0 {
		return NewExitError(ExitCommandError, "show needs a data file, or --db and --points")
	}
	runID, designs, err := loadFromCatalog(cmd.Context(), opts.Database, opts.RunID, opts.Points)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(newListing(opts.Points, runID, designs))
}

// loadDataFile loads a data file, inferring n from its name when n is zero.
func loadDataFile(path string, n int) (int, []*design.Design, error) {
	if n == 0 {
		var ok bool
		if n, ok = export.ParseDataName(path); !ok {
			return 0, nil, NewExitError(ExitCommandError,
				fmt.Sprintf("cannot infer point count from %q: pass --points", path))
		}
	}
	designs, err := export.Load(path, n)
	if err != nil {
		return 0, nil, WrapExitError(ExitCommandError, "failed to load designs", err)
	}
	return n, designs, nil
}

func loadFromCatalog(ctx context.Context, path, runID string, n int) (string, []*design.Design, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var run store.Run
	if runID == "" {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.ReadRun(ctx, runID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, NewExitError(ExitCommandError, "run not found")
	}
	if err != nil {
		return "", nil, WrapExitError(ExitCommandError, "failed to read run", err)
	}

	recs, err := st.ReadDesigns(ctx, run.ID, n)
	if err != nil {
		return "", nil, WrapExitError(ExitCommandError, "failed to read designs", err)
	}
	designs := make([]*design.Design, len(recs))
	for i, rec := range recs {
		if designs[i], err = rec.Design(); err != nil {
			return "", nil, WrapExitError(ExitFailure, "catalog holds a broken design", err)
		}
	}
	return run.ID, designs, nil
}

func formatLine(points []int) string {
	return design.NewLine(points...).String()
}
