package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	zelux_errors "zelux-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{zelux_errors.ErrDuplicateEmail, http.StatusBadRequest},
		{zelux_errors.ErrInvalidCredentials, http.StatusBadRequest},
		{fmt.Errorf("%w: email", zelux_errors.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: %w", zelux_errors.ErrUnauthorized, zelux_errors.ErrExpiredToken), http.StatusUnauthorized},
		{zelux_errors.ErrInvalidToken, http.StatusUnauthorized},
		{zelux_errors.ErrForbidden, http.StatusForbidden},
		{zelux_errors.ErrRateLimited, http.StatusTooManyRequests},
		{errors.Join(zelux_errors.ErrPersistence, errors.New("x")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := fmt.Errorf("create message: %w: %v", zelux_errors.ErrPersistence, "pq: relation missing")
	assert.Equal(t, "internal server error", PublicMessage(err))

	wrapped := fmt.Errorf("%w: %w", zelux_errors.ErrUnauthorized, zelux_errors.ErrExpiredToken)
	assert.Equal(t, "token expired", PublicMessage(wrapped))

	assert.Equal(t, "email already registered", PublicMessage(zelux_errors.ErrDuplicateEmail))
}
