package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"canpulse/internal/config"
	"canpulse/internal/infrastructure"
	"canpulse/internal/shared/testutil"
	"canpulse/internal/workflow"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

func newWorkflowService(t *testing.T) (*WorkflowService, *recordingBroadcaster, string) {
	t.Helper()
	store, dir := newTestStore(t)
	feed := &recordingBroadcaster{}
	return NewWorkflowService(nil, store, infrastructure.NoopBusinessMetrics(), feed, nil), feed, dir
}

func TestWorkflowService_ImportRawDataset(t *testing.T) {
	svc, feed, dir := newWorkflowService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)

	result, err := svc.Import(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, [2]int{6, len(testutil.DatasetHeader)}, result.Shape)
	assert.Len(t, result.Preview, 5)
	assert.True(t, svc.Status()[domain.StageImport])

	recorded := feed.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.MessageTypeWorkflowStatus, recorded[0].Type)
	event := recorded[0].Data.(events.WorkflowStatusEvent)
	assert.Equal(t, "import", event.Action)
	assert.True(t, event.Status[domain.StageImport])
}

func TestWorkflowService_ImportMissingFile(t *testing.T) {
	svc, feed, _ := newWorkflowService(t)

	_, err := svc.Import(context.Background(), "")

	assert.ErrorIs(t, err, workflow.ErrImport)
	assert.False(t, svc.Status()[domain.StageImport])
	assert.Empty(t, feed.recorded())
}

func TestWorkflowService_UploadCSV(t *testing.T) {
	svc, _, dir := newWorkflowService(t)
	content := "Jour_Semaine,Indice_Demande\nLundi,6.5\nMercredi,8\n"

	result, err := svc.Upload(context.Background(), "billets.csv", strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, "billets.csv", result.Filename)
	assert.Equal(t, int64(len(content)), result.Bytes)
	assert.Equal(t, [2]int{2, 2}, result.Import.Shape)

	saved, err := os.ReadFile(filepath.Join(dir, config.RawDatasetFile))
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
}

func TestWorkflowService_UploadWorkbookIsConverted(t *testing.T) {
	svc, _, dir := newWorkflowService(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Ville", "Prix_Final_MAD"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Rabat", 1200}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	result, err := svc.Upload(context.Background(), "billets.xlsx", &buf)

	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, result.Import.Shape)
	assert.FileExists(t, filepath.Join(dir, rawWorkbookFile))

	raw, err := os.ReadFile(filepath.Join(dir, config.RawDatasetFile))
	require.NoError(t, err)
	assert.Equal(t, "Ville,Prix_Final_MAD\nRabat,1200\n", string(raw))
}

func TestWorkflowService_UploadRejected(t *testing.T) {
	svc, _, dir := newWorkflowService(t)

	_, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = svc.Upload(context.Background(), "empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyUpload)
	assert.NoFileExists(t, filepath.Join(dir, config.RawDatasetFile))
}

func TestWorkflowService_EmptyUploadKeepsPreviousDataset(t *testing.T) {
	svc, feed, dir := newWorkflowService(t)
	raw := testutil.WriteDataset(t, dir, config.RawDatasetFile)
	before, err := os.ReadFile(raw)
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), "new.csv", bytes.NewReader(nil))

	assert.ErrorIs(t, err, ErrEmptyUpload)
	after, err := os.ReadFile(raw)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, svc.Status()[domain.StageImport])
	assert.Empty(t, feed.recorded())
}

func TestWorkflowService_CleanAndReset(t *testing.T) {
	svc, feed, dir := newWorkflowService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)

	_, err := svc.Import(context.Background(), "")
	require.NoError(t, err)

	cleaned, err := svc.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.CleanedDatasetFile, cleaned.Artifact)
	assert.FileExists(t, filepath.Join(dir, config.CleanedDatasetFile))
	assert.True(t, svc.Status()[domain.StageCleaning])

	result, err := svc.Reset(context.Background(), "preprocessing")
	require.NoError(t, err)
	assert.Equal(t, workflow.ScopePreprocessing, result.Scope)
	assert.Equal(t, 1, result.Deleted)
	assert.NoFileExists(t, filepath.Join(dir, config.CleanedDatasetFile))
	assert.FileExists(t, filepath.Join(dir, config.RawDatasetFile))
	assert.Empty(t, svc.Status().Completed())

	recorded := feed.recorded()
	require.Len(t, recorded, 3)
	last := recorded[2].Data.(events.WorkflowStatusEvent)
	assert.Equal(t, "reset", last.Action)
	assert.Contains(t, last.Message, "1 files deleted")
}

func TestWorkflowService_CleanWithoutImport(t *testing.T) {
	svc, _, _ := newWorkflowService(t)

	_, err := svc.Clean(context.Background())

	assert.ErrorIs(t, err, workflow.ErrDatasetUnavailable)
}

func TestWorkflowService_ResetUnknownScope(t *testing.T) {
	svc, feed, dir := newWorkflowService(t)
	testutil.WriteDataset(t, dir, config.RawDatasetFile)
	_, err := svc.Import(context.Background(), "")
	require.NoError(t, err)

	_, err = svc.Reset(context.Background(), "everything")

	assert.ErrorIs(t, err, workflow.ErrUnsupportedResetScope)
	assert.True(t, svc.Status()[domain.StageImport], "a rejected reset leaves the session untouched")
	assert.Len(t, feed.recorded(), 1)
}
