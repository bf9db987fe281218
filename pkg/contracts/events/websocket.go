// Package events contains the event contracts of the status feed.
package events

import (
	"time"

	"github.com/google/uuid"

	"canpulse/pkg/contracts/domain"
)

// MessageType defines the type of a status feed message
type MessageType string

const (
	// Sent to a client right after it connects
	MessageTypeConnect MessageType = "connect"

	// Workflow flags changed (import, cleaning, reset)
	MessageTypeWorkflowStatus MessageType = "workflow:status"

	// A batch of derived views was written
	MessageTypeVizGenerated MessageType = "viz:generated"

	// An extraction or reference catalog run persisted its artifact
	MessageTypeScrapeCompleted MessageType = "scrape:completed"

	MessageTypeError MessageType = "error"
)

// Message is the envelope of every status feed frame
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// NewMessage wraps data in an envelope stamped with a fresh id
func NewMessage(t MessageType, data interface{}, traceID string) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		TraceID:   traceID,
		Data:      data,
	}
}

// ConnectEvent greets a new subscriber
type ConnectEvent struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// VizGeneratedEvent lists the artifacts written by a batch run
type VizGeneratedEvent struct {
	Files []string `json:"files"`
}

// ScrapeCompletedEvent reports one persisted extraction
type ScrapeCompletedEvent struct {
	Source  string `json:"source"`
	File    string `json:"file"`
	Records int    `json:"records"`
}

// ErrorEvent reports a failed operation
type ErrorEvent struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
}

// WorkflowStatusEvent is the payload of MessageTypeWorkflowStatus
type WorkflowStatusEvent = domain.WorkflowEvent
