package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"canpulse/internal/config"
	"canpulse/internal/exporter"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/reference"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

var tracer = otel.Tracer("canpulse/services")

// MatchExtractor turns a calendar page into match records. *scraper.Engine
// implements it.
type MatchExtractor interface {
	FetchAndExtract(ctx context.Context, url string) ([]domain.MatchRecord, error)
}

// ScrapeOptions configures ScrapeService
type ScrapeOptions struct {
	// URL is the calendar page used when a request names none
	URL string
	// TicketsUpdated is the default publication date of the price grid
	TicketsUpdated string
}

// ScrapeService runs extractions and persists their artifacts
type ScrapeService struct {
	extractor MatchExtractor
	store     *files.Store
	opts      ScrapeOptions
	metrics   *infrastructure.BusinessMetrics
	events    EventBroadcaster
	logger    *slog.Logger
}

// NewScrapeService creates a scrape service. metrics and broadcaster may be nil.
func NewScrapeService(extractor MatchExtractor, store *files.Store, opts ScrapeOptions,
	metrics *infrastructure.BusinessMetrics, broadcaster EventBroadcaster, logger *slog.Logger) *ScrapeService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.URL == "" {
		opts.URL = config.DefaultCalendarURL
	}
	if opts.TicketsUpdated == "" {
		opts.TicketsUpdated = reference.DefaultTicketsUpdated
	}
	return &ScrapeService{
		extractor: extractor,
		store:     store,
		opts:      opts,
		metrics:   metrics,
		events:    broadcasterOrNoop(broadcaster),
		logger:    logger.With(slog.String("component", "scrape_service")),
	}
}

// ScrapeMatches extracts the fixtures of url (the configured page when
// empty) and writes them to matches.csv. Nothing is written when the
// extraction fails.
func (s *ScrapeService) ScrapeMatches(ctx context.Context, url string) ([]domain.MatchRecord, error) {
	if url == "" {
		url = s.opts.URL
	}

	ctx, span := tracer.Start(ctx, "ScrapeService.ScrapeMatches")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	start := time.Now()
	matches, err := s.extractor.FetchAndExtract(ctx, url)
	if err != nil {
		s.metrics.RecordExtraction(ctx, "matches", 0, time.Since(start), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		s.logger.ErrorContext(ctx, "Match extraction failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("match extraction failed: %w", err)
	}

	if err := s.store.Save(config.MatchesFile, domain.MatchColumns, exporter.MatchRows(matches)); err != nil {
		s.metrics.RecordExtraction(ctx, "matches", 0, time.Since(start), err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to persist matches: %w", err)
	}

	s.metrics.RecordExtraction(ctx, "matches", len(matches), time.Since(start), nil)
	span.SetAttributes(attribute.Int("matches", len(matches)))
	s.completed(ctx, "matches", config.MatchesFile, len(matches))
	return matches, nil
}

// ScrapeStadiums writes the venue catalog to stadiums.csv
func (s *ScrapeService) ScrapeStadiums(ctx context.Context) ([]domain.Stadium, error) {
	start := time.Now()
	stadiums := reference.Stadiums()

	if err := s.store.Save(config.StadiumsFile, domain.StadiumColumns, exporter.StadiumRows(stadiums)); err != nil {
		s.metrics.RecordExtraction(ctx, "stadiums", 0, time.Since(start), err)
		return nil, fmt.Errorf("failed to persist stadiums: %w", err)
	}

	s.metrics.RecordExtraction(ctx, "stadiums", len(stadiums), time.Since(start), nil)
	s.completed(ctx, "stadiums", config.StadiumsFile, len(stadiums))
	return stadiums, nil
}

// ScrapeTickets writes the ticket price grid to tickets.csv. An empty
// lastUpdated uses the configured publication date.
func (s *ScrapeService) ScrapeTickets(ctx context.Context, lastUpdated string) ([]domain.TicketTier, error) {
	if lastUpdated == "" {
		lastUpdated = s.opts.TicketsUpdated
	}
	start := time.Now()
	tiers := reference.TicketTiers(lastUpdated)

	if err := s.store.Save(config.TicketsFile, domain.TicketColumns, exporter.TicketRows(tiers)); err != nil {
		s.metrics.RecordExtraction(ctx, "tickets", 0, time.Since(start), err)
		return nil, fmt.Errorf("failed to persist tickets: %w", err)
	}

	s.metrics.RecordExtraction(ctx, "tickets", len(tiers), time.Since(start), nil)
	s.completed(ctx, "tickets", config.TicketsFile, len(tiers))
	return tiers, nil
}

func (s *ScrapeService) completed(ctx context.Context, source, file string, records int) {
	s.logger.InfoContext(ctx, "Extraction persisted",
		slog.String("source", source),
		slog.String("file", file),
		slog.Int("records", records))
	s.events.Broadcast(ctx, events.MessageTypeScrapeCompleted, events.ScrapeCompletedEvent{
		Source:  source,
		File:    file,
		Records: records,
	})
}
