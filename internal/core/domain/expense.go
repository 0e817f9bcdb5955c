package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a record of a debit against exactly one account.
// Date is the point in time the expense occurred, distinct from CreatedAt
// which records when the entry was added. AccountID is a required, non-owning
// reference; deleting an account cascade-deletes its expenses explicitly.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Item        string          `json:"item"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId"`
	CreatedAt   time.Time       `json:"createdAt"`
}
