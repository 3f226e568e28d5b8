// Package notify fans contact submissions out to best-effort sinks: the chat
// webhook, the object-storage archive and the admin live feed.
package notify

import (
	"time"

	"zelux-backend/internal/domain/message"

	"github.com/google/uuid"
)

// ContactEvent is the payload every sink receives for a stored message.
type ContactEvent struct {
	MessageID uuid.UUID  `json:"message_id"`
	UserID    *uuid.UUID `json:"user_id"`
	Name      string     `json:"nome"`
	Email     string     `json:"email"`
	Content   string     `json:"contenuto"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewContactEvent(m message.Message) ContactEvent {
	return ContactEvent{
		MessageID: m.ID,
		UserID:    m.UserID,
		Name:      m.SenderName,
		Email:     m.SenderEmail,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
