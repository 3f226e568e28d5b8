package repository

import (
	"context"

	"zelux-backend/internal/domain/message"
	"zelux-backend/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	List(ctx context.Context, opts message.ListOptions) ([]message.Message, error)
}
