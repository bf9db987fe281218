package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/services"
	"canpulse/internal/viz"
	"canpulse/internal/workflow"
	"canpulse/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	dataDir string
	input   string
	clean   bool
	reset   bool
	live    bool
	seed    int64
	bins    int
	sample  int
	verbose bool
}

func parseFlags(args []string, stderr io.Writer, cfg *config.Config) (options, error) {
	fs := flag.NewFlagSet("vizgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.dataDir, "data", "", "data directory (defaults to the configured one)")
	fs.StringVar(&opts.input, "input", "", "dataset file in the data directory to import and clean first")
	fs.BoolVar(&opts.clean, "clean", true, "clean the imported dataset before generating (with -input)")
	fs.BoolVar(&opts.reset, "reset", false, "delete existing view artifacts first")
	fs.BoolVar(&opts.live, "all", cfg.Viz.PersistLiveViews, "also write the correlation and scatter artifacts")
	fs.Int64Var(&opts.seed, "seed", cfg.Viz.SampleSeed, "scatter sample seed (0 = unseeded)")
	fs.IntVar(&opts.bins, "bins", cfg.Viz.HistogramBins, "price histogram bins")
	fs.IntVar(&opts.sample, "sample", cfg.Viz.SampleSize, "scatter sample size")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.bins <= 0 || opts.sample <= 0 {
		return opts, errors.New("-bins and -sample must be positive")
	}
	return opts, nil
}

// run optionally imports and cleans a dataset, then writes every derived
// view the canonical dataset supports and prints the written files.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts, err := parseFlags(args, stderr, cfg)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := infrastructure.NewLoggerWithWriter(stderr, &slog.HandlerOptions{Level: level}).
		With(slog.String("cmd", "vizgen"))

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.DebugContext(ctx, "Starting", slog.String("version", contracts.GetFullVersionString()))

	paths := config.NewPaths(opts.dataDir)
	if opts.dataDir == "" {
		resolved, err := config.GetPaths(cfg.Paths)
		if err != nil {
			return err
		}
		paths = resolved
	}

	store := files.NewStore(paths, logger)
	metrics := infrastructure.NoopBusinessMetrics()
	wf := services.NewWorkflowService(workflow.NewSession(), store, metrics, nil, logger)

	if opts.reset {
		result, err := wf.Reset(ctx, string(workflow.ScopeViz))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "reset\t%d files deleted\n", result.Deleted)
	}

	if opts.input != "" {
		imported, err := wf.Import(ctx, opts.input)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "import\t%d rows x %d columns\n", imported.Shape[0], imported.Shape[1])

		if opts.clean {
			cleaned, err := wf.Clean(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "clean\t%s\t%d rows\n", store.Path(cleaned.Artifact), cleaned.Shape[0])
		}
	}

	generator := viz.NewGenerator(store, viz.Options{
		Bins:             opts.bins,
		SampleSize:       opts.sample,
		Seed:             opts.seed,
		PersistLiveViews: opts.live,
	}, logger)
	vz := services.NewVizService(generator, store, metrics, nil, logger)

	written, err := vz.GenerateAll(ctx)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return errors.New("the dataset has none of the columns the views need")
	}
	for _, name := range written {
		fmt.Fprintln(stdout, store.Path(name))
	}
	return nil
}
