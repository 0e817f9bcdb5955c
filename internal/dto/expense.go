package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a new expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Category    string          `json:"category"`
	Item        string          `json:"item"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId" binding:"required"`
}

// UpdateExpenseRequest defines the fields that may change on an expense.
// Pointers distinguish "not provided" from zero values; amount and accountId
// changes trigger reconciliation of one or two accounts.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Category    *string          `json:"category"`
	Item        *string          `json:"item"`
	Description *string          `json:"description"`
	AccountID   *string          `json:"accountId"`
}
