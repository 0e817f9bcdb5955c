// Package reconcile keeps account balances consistent with the expense
// ledger. Every function is pure: it takes the current collections plus an
// operation descriptor and returns a fresh copy with balances adjusted, so
// the caller owns persistence and ordering.
//
// Invariant: for every account A,
//
//	A.Balance == A.initialBalance - sum(amount of all expenses with AccountID == A.ID)
//
// where the initial balance is the balance at creation or at the last
// explicit account edit.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
)

// adjust returns a copy of accounts with delta added to the balance of the
// account matching accountID. The second return reports whether the account
// was found; when it is not, the copy is unchanged.
func adjust(accounts []domain.Account, accountID string, delta decimal.Decimal) ([]domain.Account, bool) {
	out := make([]domain.Account, len(accounts))
	copy(out, accounts)
	for i := range out {
		if out[i].ID == accountID {
			out[i].Balance = out[i].Balance.Add(delta)
			return out, true
		}
	}
	return out, false
}

// ApplyAdd debits amount from the account matching accountID in response to
// a newly created expense. A missing account is a silent no-op on the
// collection; the returned bool lets the caller surface the mismatch.
func ApplyAdd(accounts []domain.Account, accountID string, amount decimal.Decimal) ([]domain.Account, bool) {
	return adjust(accounts, accountID, amount.Neg())
}

// ApplyDelete credits amount back to the account matching accountID after
// its expense was removed. No-op if the account is gone.
func ApplyDelete(accounts []domain.Account, accountID string, amount decimal.Decimal) ([]domain.Account, bool) {
	return adjust(accounts, accountID, amount)
}

// ApplyUpdate reconciles an expense edit. When the account is unchanged it
// applies only the amount difference, avoiding a full reverse-then-reapply
// and the transient state that would come with it. When the expense moved
// between accounts it credits the old amount back to the old account and
// debits the new amount from the new one; either adjustment no-ops if its
// account no longer exists.
func ApplyUpdate(accounts []domain.Account, oldAccountID string, oldAmount decimal.Decimal, newAccountID string, newAmount decimal.Decimal) []domain.Account {
	if oldAccountID == newAccountID {
		diff := newAmount.Sub(oldAmount)
		out, _ := adjust(accounts, newAccountID, diff.Neg())
		return out
	}
	out, _ := adjust(accounts, oldAccountID, oldAmount)
	out, _ = adjust(out, newAccountID, newAmount.Neg())
	return out
}

// CascadeExpenses removes every expense attributed to the deleted account.
// Balances are untouched: the account itself is gone. The caller must
// persist the filtered expenses and the shrunken account list together so
// neither collection is observed without the other.
func CascadeExpenses(expenses []domain.Expense, accountID string) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.AccountID != accountID {
			out = append(out, e)
		}
	}
	return out
}
