package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

// LedgerSvc is the single mutation path for the local ledger. Every expense
// mutation reconciles account balances before returning; account deletion
// cascade-deletes dependent expenses.
type LedgerSvc interface {
	AddExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	// ListExpenses returns expenses sorted by date, newest first.
	ListExpenses(ctx context.Context) ([]domain.Expense, error)

	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}
