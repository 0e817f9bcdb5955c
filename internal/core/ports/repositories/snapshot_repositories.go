package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// SnapshotRepository persists one ledger snapshot per user. SaveSnapshot
// overwrites any existing snapshot for the same user.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	// FindSnapshotByUserID returns apperrors.ErrNotFound when the user has
	// never backed up.
	FindSnapshotByUserID(ctx context.Context, userID string) (*domain.Snapshot, error)
}
