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
	"time"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/reference"
	"canpulse/internal/scraper"
	"canpulse/internal/services"
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
	url         string
	dataDir     string
	headless    bool
	timeout     time.Duration
	matches     bool
	catalogs    bool
	lastUpdated string
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer, cfg *config.Config) (options, error) {
	fs := flag.NewFlagSet("scraper", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.url, "url", cfg.Scraper.URL, "calendar page to extract fixtures from")
	fs.StringVar(&opts.dataDir, "data", "", "data directory (defaults to the configured one)")
	fs.BoolVar(&opts.headless, "headless", cfg.Scraper.Headless, "run browser headless")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline for the run")
	fs.BoolVar(&opts.matches, "matches", true, "extract the match calendar")
	fs.BoolVar(&opts.catalogs, "catalogs", false, "also write the stadium and ticket catalogs")
	fs.StringVar(&opts.lastUpdated, "tickets-updated", reference.DefaultTicketsUpdated, "publication date of the ticket grid (YYYY-MM-DD)")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !opts.matches && !opts.catalogs {
		return opts, errors.New("nothing to do: both -matches and -catalogs are off")
	}
	if _, err := time.Parse("2006-01-02", opts.lastUpdated); err != nil {
		return opts, fmt.Errorf("invalid -tickets-updated %q: %w", opts.lastUpdated, err)
	}
	return opts, nil
}

// run extracts the requested artifacts into the data directory and prints
// one line per written file.
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
		With(slog.String("cmd", "scraper"))

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.DebugContext(ctx, "Starting", slog.String("version", contracts.GetFullVersionString()))

	paths, err := resolvePaths(cfg, opts.dataDir)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	cfg.Scraper.Headless = opts.headless
	engine := scraper.NewEngine(
		scraper.NewChromeFetcher(cfg.Scraper, logger),
		scraper.NewParser(cfg.Scraper.FixtureSelector),
		logger,
	)
	store := files.NewStore(paths, logger)
	svc := services.NewScrapeService(engine, store, services.ScrapeOptions{
		URL:            opts.url,
		TicketsUpdated: opts.lastUpdated,
	}, infrastructure.NoopBusinessMetrics(), nil, logger)

	if opts.catalogs {
		stadiums, err := svc.ScrapeStadiums(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%d rows\n", store.Path(config.StadiumsFile), len(stadiums))

		tiers, err := svc.ScrapeTickets(ctx, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%d rows\n", store.Path(config.TicketsFile), len(tiers))
	}

	if opts.matches {
		matches, err := svc.ScrapeMatches(ctx, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%d rows\n", store.Path(config.MatchesFile), len(matches))
	}

	return nil
}

func resolvePaths(cfg *config.Config, dataDir string) (*config.Paths, error) {
	if dataDir != "" {
		return config.NewPaths(dataDir), nil
	}
	return config.GetPaths(cfg.Paths)
}
