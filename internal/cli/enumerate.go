package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexander-cohen/SG-Design-Classification/internal/canon"
	"github.com/alexander-cohen/SG-Design-Classification/internal/classify"
	"github.com/alexander-cohen/SG-Design-Classification/internal/config"
	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
	"github.com/alexander-cohen/SG-Design-Classification/internal/engine"
	"github.com/alexander-cohen/SG-Design-Classification/internal/export"
	"github.com/alexander-cohen/SG-Design-Classification/internal/ir"
	"github.com/alexander-cohen/SG-Design-Classification/internal/metrics"
	"github.com/alexander-cohen/SG-Design-Classification/internal/publish"
	"github.com/alexander-cohen/SG-Design-Classification/internal/store"
)

// NewEnumerateCommand creates the enumerate command.
func NewEnumerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Classify designs over a range of point counts",
		Long: `Classify Sylvester-Gallai designs for every point count in
[min_points, max_points].

For each point count the listing and data files are written to the output
directory and every design is catalogued in the SQLite database. When the
run finishes a manifest is written, metrics are exported if configured, and
all files are published.

Settings come from the config file, SGDESIGN_* environment variables and
the flags below, in increasing priority.

Example:
  sgdesign enumerate --min-points 3 --max-points 9
  sgdesign enumerate --max-points 12 --compression zstd --db results.db
  sgdesign enumerate --max-points 9 --db results.db --run-id nightly-9`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumerate(rootOpts, cmd)
		},
	}

	cmd.Flags().Int("min-points", 0, "smallest point count")
	cmd.Flags().Int("max-points", 0, "largest point count")
	cmd.Flags().Int("max-line-len", 0, "longest line length tried (0 = (n-1)/2)")
	cmd.Flags().StringP("output-dir", "o", "", "directory for result files")
	cmd.Flags().String("compression", "", "data file compression (none|zstd|lz4)")
	cmd.Flags().String("db", "", "path to SQLite result catalog")
	cmd.Flags().Int("max-steps", 0, "abort after this many search steps (0 = unbounded)")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().String("run-id", "", "catalog under this run ID instead of a fresh UUIDv7; repeating a run ID is idempotent")

	return cmd
}

// EnumerateResult is the enumerate command's output.
type EnumerateResult struct {
	RunID     string        `json:"run_id"`
	OutputDir string        `json:"output_dir"`
	Database  string        `json:"database,omitempty"`
	Counts    map[int]int   `json:"counts"`
	Files     []export.File `json:"files"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Published []string      `json:"published,omitempty"`
}

// RenderText implements textRenderer.
func (r EnumerateResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "run %s\n", r.RunID)
	for _, f := range r.Files {
		fmt.Fprintf(w, "n=%-3d designs=%-6d %s\n", f.NumPoints, f.Designs, f.Data)
	}
	fmt.Fprintf(w, "elapsed %s\n", r.Elapsed.Round(time.Millisecond))
	return nil
}

func runEnumerate(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	compression, err := export.ParseCompression(cfg.Compression)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, err := publish.New(ctx, publish.Options{
		Kind:      publish.Kind(cfg.Publish.Kind),
		Bucket:    cfg.Publish.Bucket,
		Prefix:    cfg.Publish.Prefix,
		Endpoint:  cfg.Publish.Endpoint,
		AccessKey: cfg.Publish.AccessKey,
		SecretKey: cfg.Publish.SecretKey,
		UseSSL:    cfg.Publish.UseSSL,
		Region:    cfg.Publish.Region,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to configure publishing", err)
	}

	var st *store.Store
	if cfg.Database != "" {
		st, err = store.Open(cfg.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	// Continue the catalog's logical clock so seq stays monotonic across runs.
	var startSeq int64
	if st != nil {
		if startSeq, err = st.MaxSeq(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to read database", err)
		}
	}
	clock := engine.NewClockAt(startSeq)

	params := runParams(cfg)
	paramsHash, err := ir.ParamsHash(params)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	runIDs := opts.runIDs()
	if id, _ := cmd.Flags().GetString("run-id"); id != "" {
		runIDs = engine.NewFixedGenerator(id)
	}
	runID := runIDs.Generate()
	if st != nil {
		if err := st.WriteRun(ctx, store.Run{ID: runID, Params: params, ParamsHash: paramsHash, Seq: clock.Next()}); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	var prom *metrics.Prometheus
	var observer engine.Observer = engine.NoopObserver{}
	if cfg.MetricsFile != "" {
		prom = metrics.NewPrometheus()
		observer = prom
	}

	eng := engine.New(
		engine.WithCanonicalizer(canon.New(nil, canon.WithCache(cfg.CacheSize))),
		engine.WithObserver(observer),
		engine.WithMaxSteps(cfg.MaxSteps),
		engine.WithClock(clock),
	)
	classifier := classify.New(eng, classify.WithMaxLineLen(cfg.MaxLineLen))

	writer := export.NewWriter(cfg.OutputDir, compression)
	manifest := &export.Manifest{RunID: runID, ParamsHash: paramsHash, Compression: compression}
	sinks := []classify.Sink{fileSink(writer, manifest)}
	if st != nil {
		sinks = append(sinks, st.Sink(runID))
	}

	slog.Info("enumeration starting",
		"run", runID,
		"min_points", cfg.MinPoints,
		"max_points", cfg.MaxPoints,
		"max_line_len", cfg.MaxLineLen,
	)
	summary, runErr := classifier.ClassifyRange(ctx, cfg.MinPoints, cfg.MaxPoints, classify.Sinks(sinks...))

	// Partial results are still described by the manifest and metrics.
	if err := export.WriteManifest(cfg.OutputDir, manifest); err != nil {
		return WrapExitError(ExitFailure, "failed to write manifest", err)
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("failed to write metrics", "error", err)
		}
	}
	if runErr != nil {
		return enumerateError(runErr)
	}

	names := publishNames(manifest)
	if err := publish.Files(ctx, publisher, cfg.OutputDir, names...); err != nil {
		return WrapExitError(ExitFailure, "failed to publish results", err)
	}
	if cfg.Publish.Kind == string(publish.KindNone) {
		names = nil
	}

	slog.Info("enumeration finished", "run", runID, "elapsed", summary.Elapsed)
	return opts.formatter(cmd).SuccessRun(runID, EnumerateResult{
		RunID:     runID,
		OutputDir: cfg.OutputDir,
		Database:  cfg.Database,
		Counts:    summary.Counts,
		Files:     manifest.Files,
		Elapsed:   summary.Elapsed,
		Published: names,
	})
}

func runParams(cfg config.Config) ir.IRObject {
	return ir.IRObject{
		"min_points":   ir.IRInt(cfg.MinPoints),
		"max_points":   ir.IRInt(cfg.MaxPoints),
		"max_line_len": ir.IRInt(cfg.MaxLineLen),
		"max_steps":    ir.IRInt(cfg.MaxSteps),
		"compression":  ir.IRString(cfg.Compression),
	}
}

func fileSink(w *export.Writer, m *export.Manifest) classify.Sink {
	return classify.SinkFunc(func(ctx context.Context, n int, found []classify.Found) error {
		designs := make([]*design.Design, len(found))
		for i, f := range found {
			designs[i] = f.Design
		}
		f, err := w.Write(n, designs)
		if err != nil {
			return err
		}
		m.Add(f)
		return nil
	})
}

func publishNames(m *export.Manifest) []string {
	names := make([]string, 0, 2*len(m.Files)+1)
	for _, f := range m.Files {
		names = append(names, f.Listing, f.Data)
	}
	return append(names, export.ManifestName)
}

func enumerateError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WrapExitError(ExitFailure, "enumeration interrupted", err)
	case engine.IsQuotaError(err):
		return WrapExitError(ExitFailure, "step quota exceeded", err)
	case engine.IsOracleError(err):
		return WrapExitError(ExitFailure, "oracle failure", err)
	default:
		return WrapExitError(ExitFailure, "enumeration failed", err)
	}
}
