package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"zelux-backend/internal/domain/user"
	zelux_errors "zelux-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bearer(token string) string {
	return "Bearer " + token
}

func loginToken(t *testing.T, f *fixture, email, password string) string {
	t.Helper()
	res, err := f.auth.Login(context.Background(), LoginInput{Email: email, Password: password})
	require.NoError(t, err)
	return res.AccessToken
}

func TestAccessGuard_Resolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.auth.Register(ctx, RegisterInput{Email: "m@x.com", FullName: "M", Password: "pw"})
	require.NoError(t, err)
	admin, _, err := f.auth.ProvisionAdmin(ctx, "admin@x.com", "Admin", "pw")
	require.NoError(t, err)

	identity, err := f.guard.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAnonymous, identity.Role)
	assert.True(t, identity.IsAnonymous())

	identity, err = f.guard.Resolve(ctx, bearer(loginToken(t, f, "m@x.com", "pw")))
	require.NoError(t, err)
	assert.Equal(t, user.RoleMember, identity.Role)
	assert.Equal(t, member.ID, identity.User.ID)

	identity, err = f.guard.Resolve(ctx, "bearer "+loginToken(t, f, "admin@x.com", "pw"))
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())
	assert.Equal(t, admin.ID, identity.User.ID)
}

func TestAccessGuard_ResolveRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ghost, _, err := f.tokens.Issue(TokenClaims{UserID: uuid.New()})
	require.NoError(t, err)

	expiredSvc := NewTokenService(testSecret, time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := expiredSvc.Issue(TokenClaims{UserID: uuid.New()})
	require.NoError(t, err)

	for name, header := range map[string]string{
		"basic scheme":  "Basic dXNlcjpwdw==",
		"bearer only":   "Bearer",
		"bearer blank":  "Bearer   ",
		"garbage token": "Bearer abc",
		"deleted user":  bearer(ghost),
		"expired":       bearer(expired),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.guard.Resolve(ctx, header)
			assert.ErrorIs(t, err, zelux_errors.ErrUnauthorized)
		})
	}

	_, err = f.guard.Resolve(ctx, bearer(expired))
	assert.ErrorIs(t, err, zelux_errors.ErrExpiredToken)
}

func TestAccessGuard_OptionalUserMatchesRequireUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "m@x.com", FullName: "M", Password: "pw"})
	require.NoError(t, err)
	header := bearer(loginToken(t, f, "m@x.com", "pw"))

	none, err := f.guard.OptionalUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, none)

	optional, err := f.guard.OptionalUser(ctx, header)
	require.NoError(t, err)
	required, err := f.guard.RequireUser(ctx, header)
	require.NoError(t, err)
	require.NotNil(t, optional)
	assert.Equal(t, required, *optional)

	_, err = f.guard.OptionalUser(ctx, "Bearer nope")
	assert.ErrorIs(t, err, zelux_errors.ErrUnauthorized)

	_, err = f.guard.RequireUser(ctx, "")
	assert.ErrorIs(t, err, zelux_errors.ErrUnauthorized)
}

func TestAccessGuard_RequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "m@x.com", FullName: "M", Password: "pw"})
	require.NoError(t, err)
	_, _, err = f.auth.ProvisionAdmin(ctx, "admin@x.com", "Admin", "pw")
	require.NoError(t, err)

	_, err = f.guard.RequireAdmin(ctx, bearer(loginToken(t, f, "m@x.com", "pw")))
	assert.ErrorIs(t, err, zelux_errors.ErrForbidden)

	admin, err := f.guard.RequireAdmin(ctx, bearer(loginToken(t, f, "admin@x.com", "pw")))
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	_, err = f.guard.RequireAdmin(ctx, "")
	assert.ErrorIs(t, err, zelux_errors.ErrUnauthorized)
}

func TestAccessGuard_AdminFlagComesFromStoredUser(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	demoted := user.User{ID: uuid.New(), Email: "old-admin@x.com", IsAdmin: false}

	repo := new(MockUserRepository)
	repo.On("GetUserByID", mock.Anything, demoted.ID).Return(demoted, nil)

	token, _, err := tokens.Issue(TokenClaims{UserID: demoted.ID, IsAdmin: true})
	require.NoError(t, err)

	_, err = NewAccessGuard(tokens, repo).RequireAdmin(context.Background(), bearer(token))
	assert.ErrorIs(t, err, zelux_errors.ErrForbidden)
}

func TestAccessGuard_StorageFailureIsNotUnauthorized(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	id := uuid.New()

	repo := new(MockUserRepository)
	repo.On("GetUserByID", mock.Anything, id).Return(user.User{}, errors.Join(zelux_errors.ErrPersistence, errors.New("timeout")))

	token, _, err := tokens.Issue(TokenClaims{UserID: id})
	require.NoError(t, err)

	_, err = NewAccessGuard(tokens, repo).Resolve(context.Background(), bearer(token))
	assert.ErrorIs(t, err, zelux_errors.ErrPersistence)
	assert.NotErrorIs(t, err, zelux_errors.ErrUnauthorized)
}

func TestExtractBearer(t *testing.T) {
	token, ok := ExtractBearer("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = ExtractBearer("  bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = ExtractBearer("Token abc")
	assert.False(t, ok)
	_, ok = ExtractBearer("abc")
	assert.False(t, ok)
}
