package files

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	apierrors "canpulse/internal/errors"
	"canpulse/internal/shared/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewStore(config.NewPaths(filepath.Join(t.TempDir(), "data")), logger)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(config.TicketsFile, []string{"stage", "category"}, [][]string{{"Final", "Category 1"}}))
	assert.True(t, store.Exists(config.TicketsFile))

	table, err := store.Load(config.TicketsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"stage", "category"}, table.Header)
	assert.Equal(t, [][]string{{"Final", "Category 1"}}, table.Rows)
	assert.Equal(t, 1, store.CountRows(config.TicketsFile))
}

func TestStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(config.MatchesFile)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.False(t, store.Exists(config.MatchesFile))
	assert.Zero(t, store.CountRows(config.MatchesFile))
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(config.StadiumsFile, []string{"name"}, nil))

	removed, err := store.Delete(config.StadiumsFile)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(config.StadiumsFile)
	require.NoError(t, err, "deleting a missing artifact is a no-op")
	assert.False(t, removed)
}

func TestStore_WriteFrom(t *testing.T) {
	store := newTestStore(t)

	n, err := store.WriteFrom(config.RawDatasetFile, strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
	assert.Equal(t, 1, store.CountRows(config.RawDatasetFile))
}

func TestStore_WriteFromEmptyKeepsExisting(t *testing.T) {
	store := newTestStore(t)
	_, err := store.WriteFrom(config.RawDatasetFile, strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)

	n, err := store.WriteFrom(config.RawDatasetFile, strings.NewReader(""))

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, store.CountRows(config.RawDatasetFile))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no staging file left behind")
}

func TestStore_WriteFromFailedCopyKeepsExisting(t *testing.T) {
	store := newTestStore(t)
	_, err := store.WriteFrom(config.RawDatasetFile, strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)

	_, err = store.WriteFrom(config.RawDatasetFile, iotest.ErrReader(errors.New("connection reset")))

	require.Error(t, err)
	assert.Equal(t, 1, store.CountRows(config.RawDatasetFile))
}

func TestStore_CanonicalDataset(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CanonicalDataset()
	assert.ErrorIs(t, err, ErrArtifactMissing)

	testutil.WriteDataset(t, store.Dir(), config.RawDatasetFile)
	name, err := store.CanonicalDataset()
	require.NoError(t, err)
	assert.Equal(t, config.RawDatasetFile, name)

	testutil.WriteDataset(t, store.Dir(), config.CleanedDatasetFile)
	name, err = store.CanonicalDataset()
	require.NoError(t, err)
	assert.Equal(t, config.CleanedDatasetFile, name)
}

func TestStore_Path(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, filepath.Join(store.Dir(), "matches.csv"), store.Path("matches.csv"))
	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	assert.Equal(t, abs, store.Path(abs))
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)

	files, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, files, "missing data directory lists as empty")

	require.NoError(t, store.Save(config.VizDayDemandFile, []string{"Jour_Semaine"}, nil))
	require.NoError(t, store.Save(config.MatchesFile, []string{"match_id"}, nil))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0644))

	files, err = store.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, config.MatchesFile, files[0].Name)
	assert.Equal(t, config.VizDayDemandFile, files[1].Name)

}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	list := []FileInfo{
		{Name: config.MatchesFile, ModTime: now.Add(-time.Hour)},
		{Name: config.CleanedDatasetFile, ModTime: now},
		{Name: config.StadiumsFile, ModTime: now.Add(-2 * time.Hour)},
	}

	latest, ok := GetLatestFile(list)
	assert.True(t, ok)
	assert.Equal(t, config.CleanedDatasetFile, latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

func TestStore_SaveFailureIsStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	store := NewStore(config.NewPaths(blocker), nil)

	err := store.Save(config.MatchesFile, []string{"match_id"}, nil)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeStorage, appErr.Type)
	assert.Equal(t, config.MatchesFile, appErr.Context["artifact"])
}
