package http

import (
	"log/slog"
	"net/http"

	apierrors "canpulse/internal/errors"
	"canpulse/internal/files"
	"canpulse/internal/scraper"
	"canpulse/internal/services"
	"canpulse/internal/viz"
	"canpulse/internal/workflow"
)

// DomainErrorMappings returns the problem mapping for every domain sentinel.
// Register them on the ErrorHandler shared by all handlers.
func DomainErrorMappings() []apierrors.Mapping {
	return []apierrors.Mapping{
		{Target: scraper.ErrSourceUnavailable, Status: http.StatusBadGateway, Type: apierrors.TypeSourceUnavailable, Title: "Source Unavailable"},
		{Target: scraper.ErrExtractionEmpty, Status: http.StatusNotFound, Type: apierrors.TypeExtractionEmpty, Title: "No Fixtures Found"},
		{Target: workflow.ErrUnsupportedResetScope, Status: http.StatusBadRequest, Type: apierrors.TypeUnsupportedScope, Title: "Unsupported Reset Scope"},
		{Target: services.ErrInvalidFileType, Status: http.StatusBadRequest, Type: apierrors.TypeInvalidUpload, Title: "Invalid Upload"},
		{Target: services.ErrEmptyUpload, Status: http.StatusBadRequest, Type: apierrors.TypeInvalidUpload, Title: "Invalid Upload"},
		{Target: viz.ErrColumnMissing, Status: http.StatusNotFound, Type: apierrors.TypeColumnMissing, Title: "Column Missing"},
		{Target: workflow.ErrImport, Status: http.StatusNotFound, Type: apierrors.TypeImportFailed, Title: "Import Failed"},
		{Target: workflow.ErrDatasetUnavailable, Status: http.StatusNotFound, Type: apierrors.TypeDatasetMissing, Title: "Dataset Unavailable"},
		{Target: files.ErrArtifactMissing, Status: http.StatusNotFound, Type: apierrors.TypeNotFound, Title: "Not Found"},
	}
}

// NewErrorHandler builds the problem renderer with the domain mappings registered
func NewErrorHandler(logger *slog.Logger, includeStack bool) *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(logger, includeStack).Register(DomainErrorMappings()...)
}
