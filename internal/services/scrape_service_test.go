package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	"canpulse/internal/infrastructure"
	"canpulse/internal/scraper"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

func TestScrapeService_ScrapeMatches(t *testing.T) {
	store, _ := newTestStore(t)
	extractor := &fakeExtractor{matches: []domain.MatchRecord{
		{MatchID: ptr("1"), Status: "FT", Stage: "Group", HomeScore: ptr(1), AwayScore: ptr(1), IsDraw: true},
		{MatchID: ptr("2"), Status: domain.DefaultMatchStatus, Stage: domain.DefaultMatchStage},
	}}
	feed := &recordingBroadcaster{}
	svc := NewScrapeService(extractor, store, ScrapeOptions{}, infrastructure.NoopBusinessMetrics(), feed, nil)

	matches, err := svc.ScrapeMatches(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, config.DefaultCalendarURL, extractor.gotURL)

	saved, err := store.Load(config.MatchesFile)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchColumns, saved.Header)
	assert.Equal(t, 2, saved.Len())
	assert.Equal(t, "True", saved.Cell(0, "is_draw"))

	recorded := feed.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.MessageTypeScrapeCompleted, recorded[0].Type)
	assert.Equal(t, events.ScrapeCompletedEvent{Source: "matches", File: config.MatchesFile, Records: 2}, recorded[0].Data)
}

func TestScrapeService_ScrapeMatchesFailureWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "source unavailable", err: &scraper.SourceError{URL: "https://x", Err: context.DeadlineExceeded}, target: scraper.ErrSourceUnavailable},
		{name: "no fixtures", err: scraper.ErrExtractionEmpty, target: scraper.ErrExtractionEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			feed := &recordingBroadcaster{}
			svc := NewScrapeService(&fakeExtractor{err: tt.err}, store, ScrapeOptions{URL: "https://x"}, nil, feed, nil)

			_, err := svc.ScrapeMatches(context.Background(), "")

			assert.ErrorIs(t, err, tt.target)
			assert.False(t, store.Exists(config.MatchesFile))
			assert.Empty(t, feed.recorded())
		})
	}
}

func TestScrapeService_ExplicitURL(t *testing.T) {
	store, _ := newTestStore(t)
	extractor := &fakeExtractor{matches: []domain.MatchRecord{{}}}
	svc := NewScrapeService(extractor, store, ScrapeOptions{URL: "https://default"}, nil, nil, nil)

	_, err := svc.ScrapeMatches(context.Background(), "https://other")

	require.NoError(t, err)
	assert.Equal(t, "https://other", extractor.gotURL)
}

func TestScrapeService_ReferenceCatalogs(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewScrapeService(&fakeExtractor{err: errors.New("unused")}, store, ScrapeOptions{}, nil, nil, nil)

	stadiums, err := svc.ScrapeStadiums(context.Background())
	require.NoError(t, err)
	assert.Len(t, stadiums, 6)
	assert.Equal(t, 6, store.CountRows(config.StadiumsFile))

	tiers, err := svc.ScrapeTickets(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, tiers, 15)

	saved, err := store.Load(config.TicketsFile)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketColumns, saved.Header)
	assert.Equal(t, "2026-02-07", saved.Cell(0, "last_updated"))
	assert.Equal(t, "300", saved.Cell(0, "price_max_MAD"))

	tiers, err = svc.ScrapeTickets(context.Background(), "2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", tiers[0].LastUpdated)
}
