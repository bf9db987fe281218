package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"canpulse/pkg/contracts/domain"
)

// Engine fetches a page and extracts its fixtures
type Engine struct {
	fetcher Fetcher
	parser  *Parser
	logger  *slog.Logger
}

// NewEngine creates an engine. A nil parser uses the default fixture selector.
func NewEngine(fetcher Fetcher, parser *Parser, logger *slog.Logger) *Engine {
	if parser == nil {
		parser = NewParser("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fetcher: fetcher,
		parser:  parser,
		logger:  logger.With(slog.String("component", "scraper")),
	}
}

// FetchAndExtract loads url and parses its fixtures. It does not write storage.
func (e *Engine) FetchAndExtract(ctx context.Context, url string) ([]domain.MatchRecord, error) {
	ctx, span := tracer.Start(ctx, "Engine.FetchAndExtract")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	start := time.Now()
	markup, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		if !errors.Is(err, ErrSourceUnavailable) {
			err = &SourceError{URL: url, Err: err}
		}
		return nil, err
	}

	matches, err := e.parser.Parse(ctx, markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		e.logger.WarnContext(ctx, "No fixtures extracted",
			slog.String("url", url),
			slog.Int("html_bytes", len(markup)),
			slog.String("error", err.Error()))
		return nil, err
	}

	e.logger.InfoContext(ctx, "Fixtures extracted",
		slog.String("url", url),
		slog.Int("matches", len(matches)),
		slog.Duration("duration", time.Since(start)))
	span.SetAttributes(attribute.Int("matches", len(matches)))
	return matches, nil
}
