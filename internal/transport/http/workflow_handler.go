package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "canpulse/internal/errors"
	custommw "canpulse/internal/middleware"
	"canpulse/internal/services"
	api "canpulse/pkg/contracts/api/v1"
)

// uploadField is the multipart field carrying the dataset
const uploadField = "file"

// WorkflowHandler drives the preprocessing state machine
type WorkflowHandler struct {
	service        *services.WorkflowService
	validator      *custommw.Validator
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewWorkflowHandler creates a new workflow handler. Uploads larger than
// maxUploadBytes are rejected with 413.
func NewWorkflowHandler(service *services.WorkflowService, validator *custommw.Validator, maxUploadBytes int64,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *WorkflowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkflowHandler{
		service:        service,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "workflow_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes mounts under /api/workflow
func (h *WorkflowHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", h.GetStatus)
	r.Post("/reset", h.Reset)
	r.Post("/import", h.Import)
	r.Post("/upload", h.Upload)
	r.Post("/clean", h.Clean)
	return r
}

// GetStatus handles GET /api/workflow/status
func (h *WorkflowHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status())
}

// Reset handles POST /api/workflow/reset
func (h *WorkflowHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req api.ResetRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Reset(r.Context(), req.Type)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":        "success",
		"message":       fmt.Sprintf("Reset (%s) done. %d files deleted.", result.Scope, result.Deleted),
		"scope":         result.Scope,
		"deleted_files": result.Deleted,
		"workflow":      result.Status,
	})
}

// Import handles POST /api/workflow/import. Without a filename the raw
// upload target is imported.
func (h *WorkflowHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req api.ImportRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Import(r.Context(), req.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Upload handles POST /api/workflow/upload with a multipart "file" field
func (h *WorkflowHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			h.errorHandler.HandleError(w, r, err)
		case errors.Is(err, http.ErrMissingFile):
			h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{{
				Field:   uploadField,
				Message: "No file was sent",
			}}))
		default:
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{{
			Field:   uploadField,
			Message: "File name is empty",
		}}))
		return
	}

	h.logger.InfoContext(r.Context(), "dataset upload received",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Clean handles POST /api/workflow/clean
func (h *WorkflowHandler) Clean(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Clean(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
