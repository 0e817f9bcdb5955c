package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// UserRepository persists backup users on the backend.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	// FindUserByEmail returns apperrors.ErrNotFound when no user exists.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	MarkUserLogin(ctx context.Context, userID string) error
}
