package dto

import "github.com/shopspring/decimal"

// CreateAccountRequest defines the data needed to create a new account.
// Balance is the initial balance and becomes the reconciliation baseline.
type CreateAccountRequest struct {
	Name    string          `json:"name" binding:"required"`
	Type    string          `json:"type" binding:"required"`
	Balance decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest defines the data allowed for an explicit account
// edit. A provided Balance overwrites the stored balance outright and
// resets the reconciliation baseline.
type UpdateAccountRequest struct {
	Name    *string          `json:"name"`
	Type    *string          `json:"type"`
	Balance *decimal.Decimal `json:"balance"`
}
