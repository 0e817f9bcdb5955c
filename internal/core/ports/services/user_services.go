package services

import (
	"context"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// UserSvc authenticates backup users. LoginOrRegister mirrors the mobile
// client contract: unknown credentials create the account instead of
// failing, so the second return reports whether a new user was created.
type UserSvc interface {
	LoginOrRegister(ctx context.Context, email, password string) (*domain.User, bool, error)
	FindOrCreateGoogleUser(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
