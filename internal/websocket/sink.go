package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"zelux-backend/internal/notify"
)

var _ notify.Sink = (*HubSink)(nil)

// HubSink feeds contact events straight into the local hub. It stands in for
// the Redis bridge when Redis is disabled.
type HubSink struct {
	hub *Hub
}

func NewHubSink(hub *Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) Name() string {
	return "live-feed"
}

func (s *HubSink) Deliver(ctx context.Context, event notify.ContactEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	s.hub.Broadcast(payload)
	return nil
}
