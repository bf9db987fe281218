package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"canpulse/internal/infrastructure"
	"canpulse/pkg/contracts/events"
)

const broadcastQueueSize = 64

type outbound struct {
	messageType string
	payload     []byte
}

// Hub maintains the set of active clients and fans status events out to them
type Hub struct {
	// Registered clients, owned by the Run goroutine
	clients map[*Client]bool

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	count   int
	running bool

	logger  *slog.Logger
	metrics *hubMetrics

	quit chan struct{}
	done chan struct{}
}

// NewHub creates a new Hub instance with dependency injection
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, broadcastQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		metrics:    newHubMetrics(),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs the hub loop in its own goroutine. Calling it twice is a no-op.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run is the hub's main loop. It returns after Stop.
func (h *Hub) Run() {
	defer close(h.done)
	ctx := context.Background()

	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.setCount(0)
			h.logger.Info("Hub shutting down")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))
			h.metrics.connected(ctx)

			h.logger.InfoContext(h.clientContext(client), "Client registered",
				slog.Int("total_clients", len(h.clients)),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			greeting := events.NewMessage(events.MessageTypeConnect, events.ConnectEvent{
				ClientID: client.id,
				Message:  "Connected to CAN Pulse status feed",
			}, client.traceID)
			if data, err := json.Marshal(greeting); err == nil {
				select {
				case client.send <- data:
				default:
					h.logger.Warn("Failed to send connection message - client buffer full",
						slog.String("client_id", client.id))
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			h.setCount(len(h.clients))
			h.metrics.disconnected(ctx, time.Since(client.connectedAt))

			h.logger.InfoContext(h.clientContext(client), "Client unregistered",
				slog.Int("total_clients", len(h.clients)),
				slog.String("client_id", client.id),
				slog.Duration("connection_duration", time.Since(client.connectedAt)))

		case msg := <-h.broadcast:
			delivered, dropped := 0, 0
			for client := range h.clients {
				select {
				case client.send <- msg.payload:
					delivered++
				default:
					// Slow consumer: disconnect instead of blocking the fan-out
					dropped++
					delete(h.clients, client)
					close(client.send)
					h.metrics.disconnected(ctx, time.Since(client.connectedAt))
					h.metrics.dropped(ctx, "client_buffer_full")
				}
			}
			h.setCount(len(h.clients))
			h.metrics.delivered(ctx, msg.messageType, delivered)

			h.logger.Debug("Broadcast delivered",
				slog.String("type", msg.messageType),
				slog.Int("delivered", delivered),
				slog.Int("dropped", dropped))
		}
	}
}

// Broadcast sends an event to every connected client. It never blocks: when
// the queue is full or the hub stopped the event is dropped.
func (h *Hub) Broadcast(ctx context.Context, messageType events.MessageType, data interface{}) {
	msg := events.NewMessage(messageType, data, infrastructure.GetTraceID(ctx))
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling message",
			slog.String("error", err.Error()),
			slog.String("message_type", string(messageType)))
		return
	}

	select {
	case <-h.quit:
		return
	default:
	}

	select {
	case h.broadcast <- outbound{messageType: string(messageType), payload: payload}:
	default:
		h.metrics.dropped(ctx, "queue_full")
		h.logger.WarnContext(ctx, "Broadcast queue full, dropping message",
			slog.String("message_type", string(messageType)))
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		close(client.send)
	}
}

// Unregister removes a client and closes its send queue
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Stop closes every client and waits for the hub loop to exit
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)
	<-h.done
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

func (h *Hub) clientContext(c *Client) context.Context {
	ctx := context.Background()
	if c.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, c.traceID)
	}
	return ctx
}
