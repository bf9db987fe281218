package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/workflow"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

const rawWorkbookFile = "dataset_raw.xlsx"

// UploadResult is returned by a successful upload
type UploadResult struct {
	Message  string                 `json:"message"`
	Filename string                 `json:"filename"`
	Bytes    int64                  `json:"bytes"`
	Import   *workflow.ImportResult `json:"pipeline_result"`
}

// WorkflowService owns the process workflow session
type WorkflowService struct {
	session *workflow.Session
	store   *files.Store
	metrics *infrastructure.BusinessMetrics
	events  EventBroadcaster
	logger  *slog.Logger
}

// NewWorkflowService creates a workflow service around session
func NewWorkflowService(session *workflow.Session, store *files.Store,
	metrics *infrastructure.BusinessMetrics, broadcaster EventBroadcaster, logger *slog.Logger) *WorkflowService {
	if logger == nil {
		logger = slog.Default()
	}
	if session == nil {
		session = workflow.NewSession()
	}
	return &WorkflowService{
		session: session,
		store:   store,
		metrics: metrics,
		events:  broadcasterOrNoop(broadcaster),
		logger:  logger.With(slog.String("component", "workflow_service")),
	}
}

// Session exposes the underlying session
func (s *WorkflowService) Session() *workflow.Session {
	return s.session
}

// Status returns a copy of the stage flags
func (s *WorkflowService) Status() domain.WorkflowStatus {
	return s.session.Status()
}

// Import loads filename from the data directory into the session. An empty
// filename imports the raw upload target.
func (s *WorkflowService) Import(ctx context.Context, filename string) (*workflow.ImportResult, error) {
	if filename == "" {
		filename = config.RawDatasetFile
	}

	ctx, span := tracer.Start(ctx, "WorkflowService.Import")
	defer span.End()
	span.SetAttributes(attribute.String("file", filename))

	result, err := s.session.ImportDataset(s.store.Path(filename))
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "Import failed",
			slog.String("file", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.RecordWorkflowTransition(ctx, string(domain.StageImport))
	s.logger.InfoContext(ctx, "Dataset imported",
		slog.String("file", filename),
		slog.Int("rows", result.Shape[0]),
		slog.Int("columns", result.Shape[1]))
	s.publish(ctx, "import", "Import successful")
	return result, nil
}

// Upload stores an uploaded dataset as the raw input and imports it. A
// workbook is kept next to the raw CSV, which is rewritten from the imported
// sheet so later steps find a CSV dataset.
func (s *WorkflowService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var target string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		target = config.RawDatasetFile
	case ".xlsx":
		target = rawWorkbookFile
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, filename)
	}

	n, err := s.store.WriteFrom(target, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyUpload
	}

	s.logger.InfoContext(ctx, "Dataset uploaded",
		slog.String("filename", filename),
		slog.String("target", target),
		slog.Int64("bytes", n))

	result, err := s.Import(ctx, target)
	if err != nil {
		return nil, err
	}

	if target != config.RawDatasetFile {
		t, err := s.session.Dataset()
		if err != nil {
			return nil, err
		}
		if err := s.store.SaveTable(config.RawDatasetFile, t); err != nil {
			return nil, fmt.Errorf("failed to convert workbook: %w", err)
		}
	}

	return &UploadResult{
		Message:  "File uploaded and imported",
		Filename: filename,
		Bytes:    n,
		Import:   result,
	}, nil
}

// Clean runs the cleaning stage on the imported dataset
func (s *WorkflowService) Clean(ctx context.Context) (*workflow.CleanResult, error) {
	ctx, span := tracer.Start(ctx, "WorkflowService.Clean")
	defer span.End()

	result, err := s.session.Clean(s.store)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", result.Shape[0]))
	s.metrics.RecordWorkflowTransition(ctx, string(domain.StageCleaning))
	s.logger.InfoContext(ctx, "Dataset cleaned",
		slog.Int("rows_in", result.Stats.RowsIn),
		slog.Int("rows_out", result.Stats.RowsOut))
	s.publish(ctx, "clean", result.Message)
	return result, nil
}

// Reset clears the session and deletes the artifacts of scope
func (s *WorkflowService) Reset(ctx context.Context, scope string) (*workflow.ResetResult, error) {
	ctx, span := tracer.Start(ctx, "WorkflowService.Reset")
	defer span.End()

	result, err := s.session.Reset(s.store, scope)
	if result == nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("scope", string(result.Scope)),
		attribute.Int("deleted", result.Deleted))
	s.metrics.RecordWorkflowReset(ctx, string(result.Scope), result.Deleted)
	s.logger.InfoContext(ctx, "Workflow reset",
		slog.String("scope", string(result.Scope)),
		slog.Int("deleted_files", result.Deleted))
	s.publish(ctx, "reset", fmt.Sprintf("Reset (%s) done. %d files deleted.", result.Scope, result.Deleted))

	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("reset %s left files behind: %w", result.Scope, err)
	}
	return result, nil
}

func (s *WorkflowService) publish(ctx context.Context, action, message string) {
	s.events.Broadcast(ctx, events.MessageTypeWorkflowStatus, events.WorkflowStatusEvent{
		Action:  action,
		Status:  s.session.Status(),
		Message: message,
	})
}

