package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/reconcile"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

// ledgerService owns the flow mutation -> reconcile -> persist. It holds no
// in-memory ledger state: each operation reads the current collections from
// the store, computes the next state through the reconciler and writes both
// collections back. The caller invokes operations sequentially, so no
// locking is needed.
type ledgerService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewLedgerService creates the local ledger service on top of a LedgerStore.
func NewLedgerService(store portsrepo.LedgerStore) portssvc.LedgerSvc {
	return &ledgerService{store: store}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) AddExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("expense amount must be positive: %w", apperrors.ErrValidation)
	}
	if req.AccountID == "" {
		return nil, fmt.Errorf("accountId is required: %w", apperrors.ErrValidation)
	}

	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	expense := domain.Expense{
		ID:          uuid.NewString(),
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		Item:        req.Item,
		Description: req.Description,
		AccountID:   req.AccountID,
		CreatedAt:   time.Now(),
	}

	if err := s.store.SaveExpenses(ctx, append(expenses, expense)); err != nil {
		return nil, fmt.Errorf("failed to save expenses: %w", err)
	}

	reconciled, found := reconcile.ApplyAdd(accounts, expense.AccountID, expense.Amount)
	if !found {
		// Preserved leniency: the balance adjustment silently no-ops, but a
		// stale accountId desynchronizes balances, so make it visible.
		s.LogWarn(ctx, "Expense references unknown account, balance not adjusted",
			slog.String("expense_id", expense.ID),
			slog.String("account_id", expense.AccountID))
	}
	if err := s.store.SaveAccounts(ctx, reconciled); err != nil {
		return nil, fmt.Errorf("failed to save accounts: %w", err)
	}

	s.LogInfo(ctx, "Expense added",
		slog.String("expense_id", expense.ID),
		slog.String("account_id", expense.AccountID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *ledgerService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	idx := -1
	for i := range expenses {
		if expenses[i].ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	original := expenses[idx]

	updated := original
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("expense amount must be positive: %w", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Item != nil {
		updated.Item = *req.Item
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.AccountID != nil {
		if *req.AccountID == "" {
			return nil, fmt.Errorf("accountId cannot be empty: %w", apperrors.ErrValidation)
		}
		updated.AccountID = *req.AccountID
	}

	expenses[idx] = updated
	if err := s.store.SaveExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to save expenses: %w", err)
	}

	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	s.warnIfMissing(ctx, accounts, updated.AccountID, updated.ID)
	reconciled := reconcile.ApplyUpdate(accounts, original.AccountID, original.Amount, updated.AccountID, updated.Amount)
	if err := s.store.SaveAccounts(ctx, reconciled); err != nil {
		return nil, fmt.Errorf("failed to save accounts: %w", err)
	}

	s.LogInfo(ctx, "Expense updated",
		slog.String("expense_id", updated.ID),
		slog.String("account_id", updated.AccountID),
		slog.String("amount", updated.Amount.String()))
	return &updated, nil
}

func (s *ledgerService) DeleteExpense(ctx context.Context, expenseID string) error {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	var target *domain.Expense
	remaining := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.ID == expenseID {
			e := e
			target = &e
			continue
		}
		remaining = append(remaining, e)
	}
	if target == nil {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}

	if err := s.store.SaveExpenses(ctx, remaining); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}

	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	reconciled, found := reconcile.ApplyDelete(accounts, target.AccountID, target.Amount)
	if !found {
		s.LogWarn(ctx, "Deleted expense references unknown account, balance not adjusted",
			slog.String("expense_id", expenseID),
			slog.String("account_id", target.AccountID))
	}
	if err := s.store.SaveAccounts(ctx, reconciled); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// ListExpenses returns all expenses sorted by date, newest first. Insertion
// order in the store is irrelevant; display order is always computed here.
func (s *ledgerService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	account := domain.Account{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		Balance:   req.Balance,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveAccounts(ctx, append(accounts, account)); err != nil {
		return nil, fmt.Errorf("failed to save accounts: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.ID),
		slog.String("name", account.Name))
	return &account, nil
}

// UpdateAccount applies an explicit account edit. A provided balance
// overwrites the stored value outside reconciliation and becomes the new
// reconciliation baseline.
func (s *ledgerService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	idx := -1
	for i := range accounts {
		if accounts[i].ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}

	if req.Name != nil {
		accounts[idx].Name = *req.Name
	}
	if req.Type != nil {
		accounts[idx].Type = *req.Type
	}
	if req.Balance != nil {
		accounts[idx].Balance = *req.Balance
	}

	if err := s.store.SaveAccounts(ctx, accounts); err != nil {
		return nil, fmt.Errorf("failed to save accounts: %w", err)
	}

	updated := accounts[idx]
	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

// DeleteAccount removes the account and cascade-deletes every expense
// attributed to it. Both collections are persisted within this one call so
// neither is observed without the other for longer than one persistence
// cycle.
func (s *ledgerService) DeleteAccount(ctx context.Context, accountID string) error {
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	remaining := make([]domain.Account, 0, len(accounts))
	found := false
	for _, a := range accounts {
		if a.ID == accountID {
			found = true
			continue
		}
		remaining = append(remaining, a)
	}
	if !found {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}

	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	if err := s.store.SaveExpenses(ctx, reconcile.CascadeExpenses(expenses, accountID)); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	if err := s.store.SaveAccounts(ctx, remaining); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	s.LogInfo(ctx, "Account deleted with cascading expenses", slog.String("account_id", accountID))
	return nil
}

func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

// TotalBalance sums the balances of all accounts.
func (s *ledgerService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load accounts: %w", err)
	}
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}

func (s *ledgerService) warnIfMissing(ctx context.Context, accounts []domain.Account, accountID, expenseID string) {
	for _, a := range accounts {
		if a.ID == accountID {
			return
		}
	}
	s.LogWarn(ctx, "Expense references unknown account, balance not adjusted",
		slog.String("expense_id", expenseID),
		slog.String("account_id", accountID))
}
