package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// ContactChannel is the pub/sub channel carrying new contact events.
const ContactChannel = "contact:messages"

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// PublishSink pushes events onto a pub/sub channel for the admin live feed.
type PublishSink struct {
	publisher Publisher
	channel   string
}

func NewPublishSink(publisher Publisher, channel string) *PublishSink {
	if channel == "" {
		channel = ContactChannel
	}
	return &PublishSink{publisher: publisher, channel: channel}
}

func (s *PublishSink) Name() string {
	return "publish:" + s.channel
}

func (s *PublishSink) Deliver(ctx context.Context, event ContactEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return s.publisher.Publish(ctx, s.channel, payload)
}
