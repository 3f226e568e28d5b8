package message

import (
	"time"

	"zelux-backend/internal/domain/user"

	"github.com/google/uuid"
)

// Message represents the messages table: one contact form submission.
// Rows are written once and never updated.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	User        *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	SenderName  string     `gorm:"column:nome;not null"`
	SenderEmail string     `gorm:"column:email;not null"`
	Content     string     `gorm:"column:contenuto;type:text;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

func (Message) TableName() string {
	return "messages"
}

// ListOptions carries pagination for the admin listing. Limit 0 means all rows.
type ListOptions struct {
	Limit  int
	Offset int
}
