package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
)

// backupService stores whole-ledger snapshots keyed by user. There is no
// merging: each backup replaces the previous snapshot outright, last write
// wins.
type backupService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
}

// NewBackupService creates the snapshot storage service.
func NewBackupService(snapshotRepo portsrepo.SnapshotRepository) portssvc.BackupSvc {
	return &backupService{snapshotRepo: snapshotRepo}
}

var _ portssvc.BackupSvc = (*backupService)(nil)

func (s *backupService) StoreSnapshot(ctx context.Context, userID string, expenses []domain.Expense, accounts []domain.Account) (time.Time, error) {
	if userID == "" {
		return time.Time{}, fmt.Errorf("userID is required: %w", apperrors.ErrValidation)
	}

	snapshot := domain.Snapshot{
		UserID:    userID,
		Expenses:  expenses,
		Accounts:  accounts,
		UpdatedAt: time.Now(),
	}
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to save snapshot", slog.String("user_id", userID))
		return time.Time{}, err
	}

	s.LogInfo(ctx, "Snapshot stored",
		slog.String("user_id", userID),
		slog.Int("expenses", len(expenses)),
		slog.Int("accounts", len(accounts)))
	return snapshot.UpdatedAt, nil
}

func (s *backupService) FetchSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.FindSnapshotByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch snapshot", slog.String("user_id", userID))
		}
		return nil, err
	}
	return snapshot, nil
}
