package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	webhookContent    = "**📩 Nuovo messaggio dal sito Zelux Studios**"
	webhookEmbedTitle = "Dettagli del Contatto"
	webhookEmbedColor = 16766720

	// Discord rejects embed field values longer than this.
	maxFieldValue = 1024
)

type webhookField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type webhookEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []webhookField `json:"fields"`
}

type webhookPayload struct {
	Content string         `json:"content"`
	Embeds  []webhookEmbed `json:"embeds"`
}

// WebhookSink posts a Discord-compatible embed to a chat webhook.
type WebhookSink struct {
	url    string
	client *http.Client
}

func NewWebhookSink(url string, client *http.Client) *WebhookSink {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &WebhookSink{url: url, client: client}
}

func (s *WebhookSink) Name() string {
	return "webhook"
}

func (s *WebhookSink) Deliver(ctx context.Context, event ContactEvent) error {
	body, err := json.Marshal(buildWebhookPayload(event))
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

func buildWebhookPayload(event ContactEvent) webhookPayload {
	return webhookPayload{
		Content: webhookContent,
		Embeds: []webhookEmbed{
			{
				Title: webhookEmbedTitle,
				Color: webhookEmbedColor,
				Fields: []webhookField{
					{Name: "👤 Nome", Value: truncate(event.Name, maxFieldValue)},
					{Name: "📧 Email", Value: truncate(event.Email, maxFieldValue)},
					{Name: "💬 Messaggio", Value: truncate(event.Content, maxFieldValue)},
				},
			},
		},
	}
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
