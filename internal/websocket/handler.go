package websocket

import (
	"context"
	"net/http"

	"zelux-backend/internal/services"
	zelux_errors "zelux-backend/pkg/errors"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	guard    *services.AccessGuard
	hub      *Hub
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(guard *services.AccessGuard, hub *Hub, l *logger.Logger) *Handler {
	return &Handler{
		guard:  guard,
		hub:    hub,
		logger: l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth is a bearer token, not a cookie, so cross-origin pages gain nothing.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream upgrades an admin to the live feed of new contact messages. Browsers
// cannot set headers on websocket requests, so the token may come as ?token=.
func (h *Handler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = services.ExtractBearer(c.GetHeader("Authorization"))
	}
	if token == "" {
		_ = c.Error(zelux_errors.ErrUnauthorized)
		return
	}

	identity, err := h.guard.ResolveToken(c.Request.Context(), token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !identity.IsAdmin() {
		_ = c.Error(zelux_errors.ErrForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.WithContext(c.Request.Context()).Warnf("websocket upgrade failed: %v", err)
		}
		return
	}

	client := NewClient(conn, identity.User.ID.String())
	h.hub.Register(client)

	ctx, cancel := context.WithCancel(context.Background())
	go client.WriteLoop(ctx)

	client.ReadLoop()

	cancel()
	h.hub.Unregister(client)
}
