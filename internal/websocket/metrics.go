package websocket

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "canpulse/websocket"

type hubMetrics struct {
	connectionsTotal   metric.Int64Counter
	connectionsActive  metric.Int64UpDownCounter
	connectionDuration metric.Float64Histogram
	messagesSent       metric.Int64Counter
	messagesDropped    metric.Int64Counter
}

// newHubMetrics registers the hub instruments on the global meter provider.
// It returns nil when an instrument cannot be created; every recorder
// tolerates a nil receiver.
func newHubMetrics() *hubMetrics {
	meter := otel.Meter(meterName)
	var errs []error

	m := &hubMetrics{}
	var err error
	m.connectionsTotal, err = meter.Int64Counter("websocket_connections_total",
		metric.WithDescription("Total number of status feed connections"))
	errs = append(errs, err)
	m.connectionsActive, err = meter.Int64UpDownCounter("websocket_connections_active",
		metric.WithDescription("Number of connected status feed clients"))
	errs = append(errs, err)
	m.connectionDuration, err = meter.Float64Histogram("websocket_connection_duration_seconds",
		metric.WithDescription("Duration of status feed connections"),
		metric.WithUnit("s"))
	errs = append(errs, err)
	m.messagesSent, err = meter.Int64Counter("websocket_messages_total",
		metric.WithDescription("Status feed messages delivered by type"))
	errs = append(errs, err)
	m.messagesDropped, err = meter.Int64Counter("websocket_messages_dropped_total",
		metric.WithDescription("Status feed messages dropped because a queue was full"))
	errs = append(errs, err)

	if errors.Join(errs...) != nil {
		return nil
	}
	return m
}

func (m *hubMetrics) connected(ctx context.Context) {
	if m == nil {
		return
	}
	m.connectionsTotal.Add(ctx, 1)
	m.connectionsActive.Add(ctx, 1)
}

func (m *hubMetrics) disconnected(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.connectionsActive.Add(ctx, -1)
	m.connectionDuration.Record(ctx, d.Seconds())
}

func (m *hubMetrics) delivered(ctx context.Context, messageType string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.messagesSent.Add(ctx, int64(n), metric.WithAttributes(attribute.String("type", messageType)))
}

func (m *hubMetrics) dropped(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.messagesDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
