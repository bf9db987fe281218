package services

import (
	"context"

	"canpulse/pkg/contracts/events"
)

// EventBroadcaster publishes status feed events. *websocket.Hub implements it.
type EventBroadcaster interface {
	Broadcast(ctx context.Context, messageType events.MessageType, data interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(context.Context, events.MessageType, interface{}) {}

func broadcasterOrNoop(b EventBroadcaster) EventBroadcaster {
	if b == nil {
		return noopBroadcaster{}
	}
	return b
}
