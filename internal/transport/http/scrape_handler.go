package http

import (
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

// ScrapeHandler triggers the extraction of matches and the reference catalogs
type ScrapeHandler struct {
	service      *services.ScrapeService
	validator    *custommw.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewScrapeHandler creates a new scrape handler
func NewScrapeHandler(service *services.ScrapeService, validator *custommw.Validator,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ScrapeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScrapeHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "scrape_handler")),
		errorHandler: errorHandler,
	}
}

// Routes mounts under /api/scrape
func (h *ScrapeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/matches", h.ScrapeMatches)
	r.Post("/stadiums", h.ScrapeStadiums)
	r.Post("/tickets", h.ScrapeTickets)
	return r
}

// ScrapeMatches handles POST /api/scrape/matches. The body is optional and
// may override the calendar URL.
func (h *ScrapeHandler) ScrapeMatches(w http.ResponseWriter, r *http.Request) {
	var req api.ScrapeMatchesRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "match extraction requested",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("url", req.URL))

	matches, err := h.service.ScrapeMatches(r.Context(), req.URL)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.MatchesResponse{
		Message: fmt.Sprintf("Successfully extracted %d matches", len(matches)),
		Count:   len(matches),
		Data:    matches,
	})
}

// ScrapeStadiums handles POST /api/scrape/stadiums
func (h *ScrapeHandler) ScrapeStadiums(w http.ResponseWriter, r *http.Request) {
	stadiums, err := h.service.ScrapeStadiums(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.StadiumsResponse{
		Message: "Stadium data extracted successfully",
		Data:    stadiums,
	})
}

// ScrapeTickets handles POST /api/scrape/tickets
func (h *ScrapeHandler) ScrapeTickets(w http.ResponseWriter, r *http.Request) {
	var req api.TicketsRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	tiers, err := h.service.ScrapeTickets(r.Context(), req.LastUpdated)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.TicketsResponse{
		Message: "Ticket data extracted successfully",
		Data:    tiers,
	})
}
