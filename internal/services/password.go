package services

import (
	"errors"

	zelux_errors "zelux-backend/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCodec hashes and verifies passwords with bcrypt. Hashes carry their
// own salt and cost, so verification needs nothing but the stored string.
type PasswordCodec struct {
	cost int
}

func NewPasswordCodec(cost int) *PasswordCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordCodec{cost: cost}
}

func (p *PasswordCodec) Hash(password string) (string, error) {
	if password == "" {
		return "", zelux_errors.ErrInvalidInput
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", zelux_errors.ErrInvalidInput
		}
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches hash. The comparison is constant time.
func (p *PasswordCodec) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
