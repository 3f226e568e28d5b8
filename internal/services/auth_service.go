package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/repository"
	zelux_errors "zelux-backend/pkg/errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

const maxNameLength = 255

type AuthService struct {
	userRepo  repository.UserRepository
	passwords *PasswordCodec
	tokens    *TokenService
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(userRepo repository.UserRepository, passwords *PasswordCodec, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		now:       zelux_errors.NowUTC,
	}
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.FullName, validation.Required, validation.RuneLength(1, maxNameLength)),
		validation.Field(&in.Password, validation.Required),
	)
}

type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	)
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        user.User
}

// Register creates a non-admin account. The email must not be taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := in.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", zelux_errors.ErrInvalidInput, err)
	}
	return s.createUser(ctx, in, false)
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return LoginResult{}, zelux_errors.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, zelux_errors.ErrNotFound) {
			// Burn the same bcrypt work as a real check so unknown emails
			// are not distinguishable by latency.
			s.passwords.Verify(in.Password, s.timingHash())
			return LoginResult{}, zelux_errors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !s.passwords.Verify(in.Password, u.PasswordHash) {
		return LoginResult{}, zelux_errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(TokenClaims{UserID: u.ID, IsAdmin: u.IsAdmin})
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        u,
	}, nil
}

// ProvisionAdmin creates the admin account if no user owns email yet. The
// boolean reports whether a row was inserted. An existing account is left as is.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, fullName, password string) (user.User, bool, error) {
	in := RegisterInput{
		Email:    normalizeEmail(email),
		FullName: strings.TrimSpace(fullName),
		Password: password,
	}
	if err := in.Validate(); err != nil {
		return user.User{}, false, fmt.Errorf("%w: %v", zelux_errors.ErrInvalidInput, err)
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, zelux_errors.ErrNotFound) {
		return user.User{}, false, err
	}

	created, err := s.createUser(ctx, in, true)
	if errors.Is(err, zelux_errors.ErrDuplicateEmail) {
		// Lost a race with another instance provisioning the same admin.
		existing, err = s.userRepo.GetUserByEmail(ctx, in.Email)
		return existing, false, err
	}
	if err != nil {
		return user.User{}, false, err
	}
	return created, true, nil
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, isAdmin bool) (user.User, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return user.User{}, zelux_errors.ErrDuplicateEmail
	} else if !errors.Is(err, zelux_errors.ErrNotFound) {
		return user.User{}, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		return user.User{}, err
	}
	return newUser, nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.passwords.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
