package middleware

import (
	"strconv"

	"zelux-backend/internal/redis"
	zelux_errors "zelux-backend/pkg/errors"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware limits requests per client IP in the given scope. A nil
// limiter disables limiting; limiter errors let the request through.
func RateLimitMiddleware(limiter *redis.RateLimiter, scope redis.Scope, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		result, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			if l != nil {
				l.WithContext(c.Request.Context()).Warnf("rate limit check failed, allowing request: %v", err)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			abortWithError(c, zelux_errors.ErrRateLimited)
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
