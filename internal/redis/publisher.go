package redis

import (
	"context"

	"zelux-backend/internal/notify"

	"github.com/redis/go-redis/v9"
)

var _ notify.Publisher = (*Publisher)(nil)

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish sends payload on channel; it succeeds even when nobody listens.
func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
