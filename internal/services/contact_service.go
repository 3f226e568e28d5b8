package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zelux-backend/internal/domain/message"
	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/notify"
	"zelux-backend/internal/repository"
	zelux_errors "zelux-backend/pkg/errors"
	"zelux-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

const maxContentLength = 5000

// ContactNotifier hands a stored message to the best-effort sinks.
type ContactNotifier interface {
	Dispatch(event notify.ContactEvent)
}

type ContactService struct {
	messageRepo repository.MessageRepository
	notifier    ContactNotifier
	logger      *logger.Logger
	now         func() time.Time
}

func NewContactService(messageRepo repository.MessageRepository, notifier ContactNotifier, l *logger.Logger) *ContactService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ContactService{
		messageRepo: messageRepo,
		notifier:    notifier,
		logger:      l,
		now:         zelux_errors.NowUTC,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Content string
}

func (in ContactInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, maxNameLength)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Content, validation.Required, validation.RuneLength(1, maxContentLength)),
	)
}

// Submit stores the message, owned by caller when the request was
// authenticated, then notifies the sinks without waiting for them.
func (s *ContactService) Submit(ctx context.Context, in ContactInput, caller *user.User) (message.Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return message.Message{}, fmt.Errorf("%w: %v", zelux_errors.ErrInvalidInput, err)
	}

	msg := message.Message{
		ID:          uuid.New(),
		SenderName:  in.Name,
		SenderEmail: in.Email,
		Content:     in.Content,
		CreatedAt:   s.now(),
	}
	if caller != nil {
		ownerID := caller.ID
		msg.UserID = &ownerID
	}

	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}

	s.logger.WithContext(ctx).Infof("contact message stored: %s | %s | %s", msg.ID, msg.SenderName, msg.SenderEmail)

	if s.notifier != nil {
		s.notifier.Dispatch(notify.NewContactEvent(msg))
	}
	return msg, nil
}

// List returns stored messages newest first. admin must hold the admin flag.
func (s *ContactService) List(ctx context.Context, admin user.User, opts message.ListOptions) ([]message.Message, error) {
	if !admin.IsAdmin {
		return nil, zelux_errors.ErrForbidden
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, zelux_errors.ErrInvalidInput
	}
	return s.messageRepo.List(ctx, opts)
}
