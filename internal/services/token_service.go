package services

import (
	"errors"
	"time"

	zelux_errors "zelux-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the identity facts carried by an access token.
type TokenClaims struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type accessClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens. There is no
// revocation list; a token is valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs claims and returns the token with its expiry.
func (s *TokenService) Issue(claims TokenClaims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		IsAdmin: claims.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate checks signature and expiry. It returns ErrExpiredToken for an
// expired but otherwise well-formed token and ErrInvalidToken for anything else.
func (s *TokenService) Validate(tokenString string) (TokenClaims, error) {
	if tokenString == "" {
		return TokenClaims{}, zelux_errors.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, zelux_errors.ErrExpiredToken
		}
		return TokenClaims{}, zelux_errors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return TokenClaims{}, zelux_errors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return TokenClaims{}, zelux_errors.ErrInvalidToken
	}

	return TokenClaims{UserID: userID, IsAdmin: claims.IsAdmin}, nil
}
