package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a money-holding entity with a running balance.
// Type is a free-text category chosen by the user (e.g. "Bank", "Wallet").
// Balance is mutated only by the reconciler in response to expense events,
// or overwritten outright by an explicit account edit, which resets the
// reconciliation baseline.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}
