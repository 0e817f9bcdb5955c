package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
)

// SnapshotRepository persists one ledger snapshot per user as JSONB columns.
// Backups replace the previous row outright.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

var _ portsrepo.SnapshotRepository = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	expensesJSON, err := json.Marshal(snapshot.Expenses)
	if err != nil {
		return fmt.Errorf("failed to marshal expenses: %w", err)
	}
	accountsJSON, err := json.Marshal(snapshot.Accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	query := `
        INSERT INTO snapshots (user_id, expenses, accounts, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            expenses = EXCLUDED.expenses,
            accounts = EXCLUDED.accounts,
            updated_at = EXCLUDED.updated_at;
    `
	_, err = r.db.Exec(ctx, query, snapshot.UserID, expensesJSON, accountsJSON, snapshot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) FindSnapshotByUserID(ctx context.Context, userID string) (*domain.Snapshot, error) {
	query := `
        SELECT user_id, expenses, accounts, updated_at
        FROM snapshots
        WHERE user_id = $1;
    `
	var snapshot domain.Snapshot
	var expensesJSON, accountsJSON []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&snapshot.UserID,
		&expensesJSON,
		&accountsJSON,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	if err := json.Unmarshal(expensesJSON, &snapshot.Expenses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expenses: %w", err)
	}
	if err := json.Unmarshal(accountsJSON, &snapshot.Accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}
	return &snapshot, nil
}
