package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/shared/testutil"
	"canpulse/pkg/contracts/domain"
)

func TestSummaryService_EmptyDirectory(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewSummaryService(store, nil)

	assert.Equal(t, domain.DataSummary{}, svc.Summary(context.Background()))

	list, err := svc.Files(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSummaryService_CountsArtifacts(t *testing.T) {
	store, dir := newTestStore(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)
	scrape := NewScrapeService(&fakeExtractor{}, store, ScrapeOptions{}, nil, nil, nil)
	_, err := scrape.ScrapeStadiums(context.Background())
	require.NoError(t, err)
	_, err = scrape.ScrapeTickets(context.Background(), "")
	require.NoError(t, err)

	svc := NewSummaryService(store, nil)
	summary := svc.Summary(context.Background())

	assert.Equal(t, domain.DataSummary{Matches: 0, Stadiums: 6, Tickets: 15, Dataset: 6}, summary)

	list, err := svc.Files(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, config.RawDatasetFile, list[0].Name)
}

func TestSummaryService_Artifact(t *testing.T) {
	store, dir := newTestStore(t)
	testutil.WriteDataset(t, dir, config.CleanedDatasetFile)
	svc := NewSummaryService(store, nil)

	path, err := svc.Artifact(context.Background(), config.CleanedDatasetFile)
	require.NoError(t, err)
	assert.Equal(t, store.Path(config.CleanedDatasetFile), path)

	_, err = svc.Artifact(context.Background(), config.MatchesFile)
	assert.ErrorIs(t, err, files.ErrArtifactMissing)
}
