package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/shared/testutil"
	"canpulse/internal/viz"
	"canpulse/pkg/contracts/events"
)

func newVizService(t *testing.T) (*VizService, *files.Store, *recordingBroadcaster, string) {
	t.Helper()
	store, dir := newTestStore(t)
	feed := &recordingBroadcaster{}
	gen := viz.NewGenerator(store, viz.Options{Seed: 1}, nil)
	return NewVizService(gen, store, infrastructure.NoopBusinessMetrics(), feed, nil), store, feed, dir
}

func TestVizService_DatasetUnavailable(t *testing.T) {
	svc, _, feed, _ := newVizService(t)

	_, err := svc.GenerateAll(context.Background())
	assert.ErrorIs(t, err, viz.ErrDatasetUnavailable)

	_, err = svc.DayDemand(context.Background())
	assert.ErrorIs(t, err, viz.ErrDatasetUnavailable)

	_, _, err = svc.ScatterSample(context.Background())
	assert.ErrorIs(t, err, viz.ErrDatasetUnavailable)

	assert.Empty(t, feed.recorded())
}

func TestVizService_GenerateAll(t *testing.T) {
	svc, store, feed, dir := newVizService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)

	produced, err := svc.GenerateAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, produced, 5)
	for _, name := range produced {
		assert.True(t, store.Exists(name))
	}

	recorded := feed.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.MessageTypeVizGenerated, recorded[0].Type)
	assert.Equal(t, events.VizGeneratedEvent{Files: produced}, recorded[0].Data)
}

func TestVizService_PrefersCleanedDataset(t *testing.T) {
	svc, _, _, dir := newVizService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)
	testutil.WriteCSV(t, dir+"/"+config.CleanedDatasetFile,
		[]string{viz.ColWeekday, viz.ColDemand},
		[][]string{{"Jeudi", "4"}})

	days, err := svc.DayDemand(context.Background())

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Jeudi", days[0].Day)
}

func TestVizService_Accessors(t *testing.T) {
	svc, _, _, dir := newVizService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)
	ctx := context.Background()

	bins, err := svc.PriceDistribution(ctx)
	require.NoError(t, err)
	assert.Len(t, bins, config.DefaultHistogramBins)

	categories, err := svc.CategoryPricing(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	effects, err := svc.TreatmentEffect(ctx)
	require.NoError(t, err)
	assert.Len(t, effects, 2)

	venues, err := svc.VenueStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rabat", venues[0].Venue)

	cells, err := svc.Correlation(ctx)
	require.NoError(t, err)
	assert.Len(t, cells, len(viz.CorrelationColumns)*len(viz.CorrelationColumns))

	columns, points, err := svc.ScatterSample(ctx)
	require.NoError(t, err)
	assert.Equal(t, viz.ScatterColumns, columns)
	assert.Len(t, points, 6)
}

func TestVizService_ColumnMissing(t *testing.T) {
	svc, _, _, dir := newVizService(t)
	testutil.WriteCSV(t, dir+"/"+config.RawDatasetFile, []string{"Stade"}, [][]string{{"Adrar"}})

	_, err := svc.CategoryPricing(context.Background())

	assert.ErrorIs(t, err, viz.ErrColumnMissing)
}
