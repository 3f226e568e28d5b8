package middleware

import (
	"net/http"

	"zelux-backend/internal/services"
	"zelux-backend/internal/transport/httpdto"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error as the JSON
// error envelope, unless a response was already written.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := services.HTTPStatus(err)
		if l != nil {
			log := l.WithContext(c.Request.Context())
			if status >= http.StatusInternalServerError {
				log.Errorf("request error: %s", err.Error())
			} else {
				log.Debugf("request rejected: %s", err.Error())
			}
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, httpdto.NewErrorResponse(services.PublicMessage(err), httpdto.ErrorCode(status)))
	}
}
