package services

import (
	"context"
	"testing"
	"time"

	"zelux-backend/internal/domain/message"
	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/notify"
	"zelux-backend/internal/repository"
	"zelux-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fixture struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	tokens   *TokenService
	auth     *AuthService
	guard    *AccessGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	users := repository.NewUserRepository(db)
	tokens := NewTokenService(testSecret, time.Hour)
	return &fixture{
		users:    users,
		messages: repository.NewMessageRepository(db),
		tokens:   tokens,
		auth:     NewAuthService(users, NewPasswordCodec(bcrypt.MinCost), tokens),
		guard:    NewAccessGuard(tokens, users),
	}
}

// MockUserRepository lets tests inject storage failures.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) List(ctx context.Context, opts message.ListOptions) ([]message.Message, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]message.Message), args.Error(1)
}

type recordingNotifier struct {
	events []notify.ContactEvent
}

func (n *recordingNotifier) Dispatch(event notify.ContactEvent) {
	n.events = append(n.events, event)
}
