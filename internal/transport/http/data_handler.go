package http

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "canpulse/internal/errors"
	"canpulse/internal/files"
	custommw "canpulse/internal/middleware"
	"canpulse/internal/services"
	api "canpulse/pkg/contracts/api/v1"
)

// DataHandler serves the artifact summary, listing and downloads
type DataHandler struct {
	service      *services.SummaryService
	validator    *custommw.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service *services.SummaryService, validator *custommw.Validator,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes mounts under /api/data
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	r.Get("/files", h.GetFiles)
	r.Get("/download/{filename}", h.DownloadFile)
	return r
}

// GetSummary handles GET /api/data/summary
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.SummaryResponse{Datasets: h.service.Summary(r.Context())})
}

// GetFiles handles GET /api/data/files
func (h *DataHandler) GetFiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Files(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("listing", err))
		return
	}

	resp := map[string]interface{}{
		"status": "success",
		"data":   list,
		"count":  len(list),
	}
	if latest, ok := files.GetLatestFile(list); ok {
		resp["latest"] = latest.Name
	}
	render.JSON(w, r, resp)
}

// DownloadFile handles GET /api/data/download/{filename}
func (h *DataHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := h.validator.Var("filename", filename, "required,datasetfile"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	path, err := h.service.Artifact(r.Context(), filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving artifact",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("file", filename))

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
