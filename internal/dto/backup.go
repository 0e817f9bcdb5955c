package dto

import (
	"time"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// BackupRequest is the full local ledger pushed to the backend.
type BackupRequest struct {
	Expenses []domain.Expense `json:"expenses"`
	Accounts []domain.Account `json:"accounts"`
}

// BackupResponse acknowledges a stored snapshot.
type BackupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RestoreResponse returns the stored snapshot for the authenticated user.
type RestoreResponse struct {
	Success   bool             `json:"success"`
	Expenses  []domain.Expense `json:"expenses"`
	Accounts  []domain.Account `json:"accounts"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
