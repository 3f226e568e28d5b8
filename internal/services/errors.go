package services

import (
	"errors"
	"net/http"

	zelux_errors "zelux-backend/pkg/errors"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, zelux_errors.ErrInvalidInput),
		errors.Is(err, zelux_errors.ErrDuplicateEmail),
		errors.Is(err, zelux_errors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, zelux_errors.ErrUnauthorized),
		errors.Is(err, zelux_errors.ErrInvalidToken),
		errors.Is(err, zelux_errors.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, zelux_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, zelux_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, zelux_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, zelux_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the error text safe to return to a client.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, zelux_errors.ErrDuplicateEmail):
		return zelux_errors.ErrDuplicateEmail.Error()
	case errors.Is(err, zelux_errors.ErrInvalidCredentials):
		return zelux_errors.ErrInvalidCredentials.Error()
	case errors.Is(err, zelux_errors.ErrExpiredToken):
		return zelux_errors.ErrExpiredToken.Error()
	case errors.Is(err, zelux_errors.ErrInvalidToken):
		return zelux_errors.ErrInvalidToken.Error()
	}

	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
