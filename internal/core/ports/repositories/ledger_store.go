package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// Setting keys used by the client application.
const (
	SettingUserAuth        = "userAuth"
	SettingBackupFrequency = "backupFrequency"
	SettingLastBackup      = "lastBackup"
)

// LedgerStore is the local persistence surface for the ledger. Both
// collections are persisted as whole-collection JSON snapshots under fixed
// keys; every mutation rewrites the entire collection. Settings share the
// same key-value store.
type LedgerStore interface {
	GetExpenses(ctx context.Context) ([]domain.Expense, error)
	SaveExpenses(ctx context.Context, expenses []domain.Expense) error
	GetAccounts(ctx context.Context) ([]domain.Account, error)
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// GetSetting returns apperrors.ErrNotFound when the key is absent.
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
