package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// AccountService handles sign-up, sign-in and the profile display name.
type AccountService interface {
	SignUp(ctx context.Context, email, password string) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (string, *entity.User, error)
	GetProfile(ctx context.Context, session auth.Session) (*entity.Profile, error)
	SaveName(ctx context.Context, session auth.Session, name string) error
}

type accountServiceImpl struct {
	userRepo    port.UserRepository
	profileRepo port.ProfileRepository
	tokens      *auth.TokenManager
	adminEmails map[string]bool
	logger      Logger
}

// NewAccountService creates a new AccountService. adminEmails lists the
// addresses granted the admin role at sign-up.
func NewAccountService(
	userRepo port.UserRepository,
	profileRepo port.ProfileRepository,
	tokens *auth.TokenManager,
	adminEmails []string,
	logger Logger,
) AccountService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &accountServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		adminEmails: admins,
		logger:      logger,
	}
}

// SignUp registers a new account with an empty profile.
func (s *accountServiceImpl) SignUp(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check existing account", "error", err, "email", email)
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if s.adminEmails[email] {
		user.Role = entity.RoleAdmin
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create account", "error", err, "email", email)
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account created", "user_id", user.ID, "email", email, "admin", user.IsAdmin())
	return user, nil
}

// SignIn verifies the credentials and issues a session token.
func (s *accountServiceImpl) SignIn(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load account", "error", err, "email", email)
		return "", nil, fmt.Errorf("load account: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue session token", "error", err, "user_id", user.ID)
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("Signed in", "user_id", user.ID)
	return token, user, nil
}

// GetProfile returns the caller's profile, synthesizing an empty one from
// the session when no name has been saved yet.
func (s *accountServiceImpl) GetProfile(ctx context.Context, session auth.Session) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to load profile", "error", err, "user_id", session.UserID)
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return &entity.Profile{UserID: session.UserID, Email: session.Email}, nil
	}
	return profile, nil
}

// SaveName stores the display name shown on submissions and notifications.
func (s *accountServiceImpl) SaveName(ctx context.Context, session auth.Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("名前を入力してください。")
	}

	if err := s.profileRepo.UpdateName(ctx, session.UserID, name); err != nil {
		s.logger.Error("Failed to save profile name", "error", err, "user_id", session.UserID)
		return fmt.Errorf("save profile name: %w", err)
	}

	s.logger.Info("Profile name saved", "user_id", session.UserID)
	return nil
}
