package services

import (
	"context"
	"time"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// BackupSvc stores and retrieves whole-ledger snapshots keyed by user.
type BackupSvc interface {
	StoreSnapshot(ctx context.Context, userID string, expenses []domain.Expense, accounts []domain.Account) (time.Time, error)
	FetchSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error)
}
