package handler

import (
	"context"
	"net/http"
	"time"

	"zelux-backend/internal/transport/httpdto"
	zelux_errors "zelux-backend/pkg/errors"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping   Pinger
	logger *logger.Logger
}

func NewHealthHandler(ping Pinger, l *logger.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: l}
}

// Home is the liveness banner served at GET /.
func (h *HealthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.StatusResponse{
		Status:  "OK",
		Message: "Zelux Backend attivo 🔥",
	})
}

// Health checks the database and answers 503 when it is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			if h.logger != nil {
				h.logger.WithContext(c.Request.Context()).Warnf("health check failed: %v", err)
			}
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(zelux_errors.ErrServiceUnavailable.Error(), "UNHEALTHY"))
			return
		}
	}
	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "healthy", Message: "database reachable"})
}
