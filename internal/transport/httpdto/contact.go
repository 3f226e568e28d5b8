package httpdto

import (
	"time"

	"zelux-backend/internal/domain/message"
)

// ContactRequest is used for POST /send-contact
type ContactRequest struct {
	Name    string `json:"nome" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"messaggio" binding:"required"`
}

// ContactResponse is returned once the message is stored
type ContactResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

// ListMessagesQuery is the optional pagination for GET /admin/messages
type ListMessagesQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// MessageResponse represents a stored contact message
type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Content   string    `json:"contenuto"`
	CreatedAt time.Time `json:"created_at"`
	UserID    *string   `json:"user_id"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	res := MessageResponse{
		ID:        m.ID.String(),
		Name:      m.SenderName,
		Email:     m.SenderEmail,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.UserID != nil {
		id := m.UserID.String()
		res.UserID = &id
	}
	return res
}

func NewMessageListResponse(messages []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, NewMessageResponse(m))
	}
	return out
}
