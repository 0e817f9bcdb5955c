package domain

import "time"

// Snapshot is a full copy of one user's ledger as stored remotely.
// The backend keeps exactly one snapshot per user; every backup overwrites it.
type Snapshot struct {
	UserID    string    `json:"userID"`
	Expenses  []Expense `json:"expenses"`
	Accounts  []Account `json:"accounts"`
	UpdatedAt time.Time `json:"updatedAt"`
}
