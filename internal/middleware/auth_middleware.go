package middleware

import (
	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/services"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// OptionalAuth lets anonymous requests through but rejects a bad token.
func OptionalAuth(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := guard.OptionalUser(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		setIdentity(c, u)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid token.
func RequireAuth(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := guard.RequireUser(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		setIdentity(c, &u)
		c.Next()
	}
}

// RequireAdmin answers 401 without valid credentials and 403 for non-admins.
func RequireAdmin(guard *services.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := guard.RequireAdmin(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		setIdentity(c, &u)
		c.Next()
	}
}

func setIdentity(c *gin.Context, u *user.User) {
	ctx := services.WithIdentity(c.Request.Context(), user.IdentityOf(u))
	if u != nil {
		ctx = logger.WithUserID(ctx, u.ID.String())
	}
	c.Request = c.Request.WithContext(ctx)
}

// abortWithError leaves rendering to ErrorHandler.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
