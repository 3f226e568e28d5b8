package handler

import (
	"net/http"

	"zelux-backend/internal/domain/message"
	"zelux-backend/internal/services"
	"zelux-backend/internal/transport/httpdto"
	zelux_errors "zelux-backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves the contact form and the admin message list.
// Both routes expect the auth middleware to have stored the caller's identity.
type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SendContact stores a contact message. Authenticated callers become its owner.
func (h *ContactHandler) SendContact(c *gin.Context) {
	var req httpdto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	identity := services.IdentityFromContext(c.Request.Context())
	msg, err := h.service.Submit(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Content: req.Message,
	}, identity.User)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ContactResponse{
		Success:   true,
		MessageID: msg.ID.String(),
	})
}

// ListMessages returns stored messages, newest first.
func (h *ContactHandler) ListMessages(c *gin.Context) {
	var query httpdto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}

	identity := services.IdentityFromContext(c.Request.Context())
	if identity.IsAnonymous() {
		_ = c.Error(zelux_errors.ErrUnauthorized)
		return
	}

	messages, err := h.service.List(c.Request.Context(), *identity.User, message.ListOptions{
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageListResponse(messages))
}
