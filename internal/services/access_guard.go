package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/repository"
	zelux_errors "zelux-backend/pkg/errors"
)

// AccessGuard turns an Authorization header into an identity.
//
// Admin status is read from the stored user on every request rather than
// from the token's is_admin claim, so demoting an admin takes effect
// immediately even though issued tokens stay valid until they expire.
type AccessGuard struct {
	tokens *TokenService
	users  repository.UserRepository
}

func NewAccessGuard(tokens *TokenService, users repository.UserRepository) *AccessGuard {
	return &AccessGuard{tokens: tokens, users: users}
}

// Resolve returns RoleAnonymous when no credentials were sent. A header that
// is present but malformed, invalid, expired, or names a deleted user yields
// ErrUnauthorized.
func (g *AccessGuard) Resolve(ctx context.Context, authorization string) (user.Identity, error) {
	if strings.TrimSpace(authorization) == "" {
		return user.Identity{Role: user.RoleAnonymous}, nil
	}

	token, ok := ExtractBearer(authorization)
	if !ok {
		return user.Identity{}, fmt.Errorf("%w: %w", zelux_errors.ErrUnauthorized, zelux_errors.ErrInvalidToken)
	}
	return g.ResolveToken(ctx, token)
}

// ResolveToken is Resolve for a raw token, as sent by websocket clients.
func (g *AccessGuard) ResolveToken(ctx context.Context, token string) (user.Identity, error) {
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return user.Identity{}, fmt.Errorf("%w: %w", zelux_errors.ErrUnauthorized, err)
	}

	u, err := g.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, zelux_errors.ErrNotFound) {
			return user.Identity{}, zelux_errors.ErrUnauthorized
		}
		return user.Identity{}, err
	}

	return user.IdentityOf(&u), nil
}

func (g *AccessGuard) RequireUser(ctx context.Context, authorization string) (user.User, error) {
	identity, err := g.Resolve(ctx, authorization)
	if err != nil {
		return user.User{}, err
	}
	if identity.IsAnonymous() {
		return user.User{}, zelux_errors.ErrUnauthorized
	}
	return *identity.User, nil
}

// OptionalUser returns nil when the request carries no credentials.
func (g *AccessGuard) OptionalUser(ctx context.Context, authorization string) (*user.User, error) {
	identity, err := g.Resolve(ctx, authorization)
	if err != nil {
		return nil, err
	}
	if identity.IsAnonymous() {
		return nil, nil
	}
	return identity.User, nil
}

func (g *AccessGuard) RequireAdmin(ctx context.Context, authorization string) (user.User, error) {
	u, err := g.RequireUser(ctx, authorization)
	if err != nil {
		return user.User{}, err
	}
	if !u.IsAdmin {
		return user.User{}, zelux_errors.ErrForbidden
	}
	return u, nil
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>" value.
func ExtractBearer(value string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
