package http

import (
	"log/slog"
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"canpulse/internal/websocket"
)

// WebSocketHandler upgrades /ws requests and attaches them to the status feed
type WebSocketHandler struct {
	hub      *websocket.Hub
	upgrader *gorilla.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a feed handler accepting the given origins
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:      hub,
		upgrader: websocket.Upgrader(allowedOrigins),
		logger:   logger.With(slog.String("component", "websocket_handler")),
	}
}

// ServeHTTP handles GET /ws. The upgrader has already answered the client
// when the handshake fails.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := websocket.ServeWS(r.Context(), h.hub, h.upgrader, w, r, h.logger); err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()))
	}
}
