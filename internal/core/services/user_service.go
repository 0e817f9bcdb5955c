package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/utils"
)

const minPasswordLength = 6

// userService implements backup-user authentication against the user
// repository.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvc {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvc = (*userService)(nil)

// LoginOrRegister authenticates the given credentials. An unknown email
// registers a new account with those credentials instead of failing; the
// second return reports whether that happened. A known email with a wrong
// password fails with ErrUnauthorized.
func (s *userService) LoginOrRegister(ctx context.Context, email, password string) (*domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, false, fmt.Errorf("email and password are required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user", slog.String("email", email))
		return nil, false, err
	}

	if user != nil {
		if user.Provider != domain.ProviderPassword || !utils.CheckPasswordHash(password, user.PasswordHash) {
			s.LogWarn(ctx, "Password mismatch on login", slog.String("user_id", user.UserID))
			return nil, false, apperrors.ErrUnauthorized
		}
		if err := s.userRepo.MarkUserLogin(ctx, user.UserID); err != nil {
			s.LogWarn(ctx, "Failed to record login time", slog.String("user_id", user.UserID))
		}
		return user, false, nil
	}

	// Unknown credentials: register automatically, mirroring the mobile
	// client contract.
	if len(password) < minPasswordLength {
		return nil, false, fmt.Errorf("weak password, please use a stronger password: %w", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Provider:     domain.ProviderPassword,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("email", email))
		return nil, false, err
	}

	s.LogInfo(ctx, "User auto-registered", slog.String("user_id", newUser.UserID))
	return &newUser, true, nil
}

// FindOrCreateGoogleUser resolves a user by the email asserted in a
// validated Google ID token, creating the account on first sign-in.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if user != nil {
		if err := s.userRepo.MarkUserLogin(ctx, user.UserID); err != nil {
			s.LogWarn(ctx, "Failed to record login time", slog.String("user_id", user.UserID))
		}
		return user, nil
	}

	now := time.Now()
	newUser := domain.User{
		UserID:      uuid.NewString(),
		Email:       email,
		Provider:    domain.ProviderGoogle,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save Google user", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "Google user registered", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}
