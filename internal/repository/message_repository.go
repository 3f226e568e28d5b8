package repository

import (
	"context"

	"zelux-backend/internal/domain/message"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Omit("User").Create(m)
	if res.Error != nil {
		return wrapStorageErr("create message", res.Error)
	}
	return nil
}

// List returns messages newest first; ties on created_at break by id.
func (r *PostgresMessageRepository) List(ctx context.Context, opts message.ListOptions) ([]message.Message, error) {
	messages := make([]message.Message, 0)
	q := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Order("created_at DESC, id DESC")

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	if err := q.Find(&messages).Error; err != nil {
		return nil, wrapStorageErr("list messages", err)
	}
	return messages, nil
}
