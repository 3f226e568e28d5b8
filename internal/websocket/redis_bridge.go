package websocket

import (
	"context"

	"zelux-backend/internal/notify"
)

type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}

// RedisBridge relays contact events published by any instance to this hub.
type RedisBridge struct {
	subscriber Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

// Run blocks until ctx is done or the subscription fails.
func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{notify.ContactChannel}, func(channel string, payload []byte) {
		b.hub.Broadcast(payload)
	})
}
