package repository

import (
	"fmt"

	"zelux-backend/internal/domain/message"
	"zelux-backend/internal/domain/user"

	"gorm.io/gorm"
)

// InitSchema creates the users and messages tables and their indexes.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&message.Message{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
