package repository

import (
	"errors"
	"fmt"

	zelux_errors "zelux-backend/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// wrapStorageErr tags a driver error as ErrPersistence while keeping the cause.
func wrapStorageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, zelux_errors.ErrPersistence, err)
}
