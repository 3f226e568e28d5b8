package services

import (
	"context"

	"zelux-backend/internal/domain/user"
)

type ctxKey string

var identityKey ctxKey = "identity"

func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by the auth middleware, or
// an anonymous identity when none was stored.
func IdentityFromContext(ctx context.Context) user.Identity {
	identity, ok := ctx.Value(identityKey).(user.Identity)
	if !ok {
		return user.Identity{Role: user.RoleAnonymous}
	}
	return identity
}
