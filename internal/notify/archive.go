package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
)

// ObjectWriter stores a JSON document under key.
type ObjectWriter interface {
	PutJSON(ctx context.Context, key string, body []byte) error
}

// ArchiveSink keeps a JSON copy of each contact message in object storage.
type ArchiveSink struct {
	writer ObjectWriter
	prefix string
}

func NewArchiveSink(writer ObjectWriter, prefix string) *ArchiveSink {
	return &ArchiveSink{writer: writer, prefix: prefix}
}

func (s *ArchiveSink) Name() string {
	return "archive"
}

func (s *ArchiveSink) Deliver(ctx context.Context, event ContactEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode archive object: %w", err)
	}
	return s.writer.PutJSON(ctx, s.Key(event), body)
}

// Key lays objects out by UTC day: <prefix>/YYYY/MM/DD/<message id>.json
func (s *ArchiveSink) Key(event ContactEvent) string {
	created := event.CreatedAt.UTC()
	return path.Join(s.prefix, created.Format("2006/01/02"), event.MessageID.String()+".json")
}
