package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "canpulse/internal/errors"
	"canpulse/internal/services"
	api "canpulse/pkg/contracts/api/v1"
)

// VizHandler serves the derived views
type VizHandler struct {
	service      *services.VizService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewVizHandler creates a new visualization handler
func NewVizHandler(service *services.VizService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *VizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VizHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "viz_handler")),
		errorHandler: errorHandler,
	}
}

// Routes mounts under /api/viz
func (h *VizHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/generate-all", h.GenerateAll)
	r.Get("/price-distribution", view(h, h.service.PriceDistribution))
	r.Get("/category-pricing", view(h, h.service.CategoryPricing))
	r.Get("/morocco-effect", view(h, h.service.TreatmentEffect))
	r.Get("/venue-stats", view(h, h.service.VenueStats))
	r.Get("/day-demand", view(h, h.service.DayDemand))
	r.Get("/correlation", view(h, h.service.Correlation))
	r.Get("/scatter", h.Scatter)
	return r
}

// GenerateAll handles POST /api/viz/generate-all
func (h *VizHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	written, err := h.service.GenerateAll(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if written == nil {
		written = []string{}
	}
	render.JSON(w, r, api.GenerateAllResponse{
		Status:  "success",
		Message: fmt.Sprintf("%d visualization files generated", len(written)),
		Files:   written,
	})
}

// Scatter handles GET /api/viz/scatter
func (h *VizHandler) Scatter(w http.ResponseWriter, r *http.Request) {
	columns, points, err := h.service.ScatterSample(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.ScatterResponse{Columns: columns, Data: points})
}

// view adapts a single-view accessor to a GET handler rendering its rows
func view[T any](h *VizHandler, compute func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := compute(r.Context())
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		render.JSON(w, r, rows)
	}
}
