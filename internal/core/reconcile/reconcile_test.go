package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	"github.com/spendtrail/spendtrail_app/internal/core/reconcile"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: "a1", Name: "Checking", Type: "Bank", Balance: dec("100")},
		{ID: "a2", Name: "Cash", Type: "Wallet", Balance: dec("200")},
	}
}

func balanceOf(t *testing.T, accounts []domain.Account, id string) decimal.Decimal {
	t.Helper()
	for _, a := range accounts {
		if a.ID == id {
			return a.Balance
		}
	}
	t.Fatalf("account %s not found", id)
	return decimal.Zero
}

func TestApplyAdd_DebitsAccount(t *testing.T) {
	out, found := reconcile.ApplyAdd(testAccounts(), "a1", dec("30"))
	assert.True(t, found)
	assert.True(t, balanceOf(t, out, "a1").Equal(dec("70")))
	assert.True(t, balanceOf(t, out, "a2").Equal(dec("200")))
}

func TestApplyAdd_MissingAccountIsNoOp(t *testing.T) {
	in := testAccounts()
	out, found := reconcile.ApplyAdd(in, "nonexistent", dec("50"))
	assert.False(t, found)
	assert.Equal(t, in, out)
}

func TestApplyAdd_DoesNotMutateInput(t *testing.T) {
	in := testAccounts()
	_, _ = reconcile.ApplyAdd(in, "a1", dec("30"))
	assert.True(t, balanceOf(t, in, "a1").Equal(dec("100")))
}

func TestApplyDelete_CreditsAccountBack(t *testing.T) {
	out, found := reconcile.ApplyDelete(testAccounts(), "a2", dec("25.50"))
	assert.True(t, found)
	assert.True(t, balanceOf(t, out, "a2").Equal(dec("225.5")))
}

func TestApplyUpdate_SameAccountDiff(t *testing.T) {
	cases := []struct {
		name     string
		oldAmt   string
		newAmt   string
		expected string
	}{
		{"amount increased", "30", "50", "80"},
		{"amount decreased", "30", "10", "120"},
		{"amount unchanged", "30", "30", "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := reconcile.ApplyUpdate(testAccounts(), "a1", dec(tc.oldAmt), "a1", dec(tc.newAmt))
			assert.True(t, balanceOf(t, out, "a1").Equal(dec(tc.expected)),
				"got %s, want %s", balanceOf(t, out, "a1"), tc.expected)
		})
	}
}

// The diff optimization must be equivalent to a full delete-then-add.
func TestApplyUpdate_SameAccountEquivalentToReverseReapply(t *testing.T) {
	oldAmt, newAmt := dec("42.17"), dec("13.09")

	viaDiff := reconcile.ApplyUpdate(testAccounts(), "a1", oldAmt, "a1", newAmt)

	reversed, found := reconcile.ApplyDelete(testAccounts(), "a1", oldAmt)
	require.True(t, found)
	reapplied, found := reconcile.ApplyAdd(reversed, "a1", newAmt)
	require.True(t, found)

	assert.True(t, balanceOf(t, viaDiff, "a1").Equal(balanceOf(t, reapplied, "a1")))
}

func TestApplyUpdate_CrossAccount(t *testing.T) {
	// Moving an expense of 50 from a1 (100) to a2 (200): a1 regains 50,
	// a2 is debited 50.
	out := reconcile.ApplyUpdate(testAccounts(), "a1", dec("50"), "a2", dec("50"))
	assert.True(t, balanceOf(t, out, "a1").Equal(dec("150")))
	assert.True(t, balanceOf(t, out, "a2").Equal(dec("150")))
}

func TestApplyUpdate_CrossAccountMissingOldAccount(t *testing.T) {
	out := reconcile.ApplyUpdate(testAccounts(), "gone", dec("50"), "a2", dec("50"))
	assert.True(t, balanceOf(t, out, "a1").Equal(dec("100")))
	assert.True(t, balanceOf(t, out, "a2").Equal(dec("150")))
}

func TestCascadeExpenses(t *testing.T) {
	expenses := []domain.Expense{
		{ID: "1", AccountID: "a1", Amount: dec("10")},
		{ID: "2", AccountID: "a2", Amount: dec("20")},
		{ID: "3", AccountID: "a1", Amount: dec("30")},
	}
	out := reconcile.CascadeExpenses(expenses, "a1")
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestCascadeExpenses_NoMatches(t *testing.T) {
	expenses := []domain.Expense{{ID: "1", AccountID: "a1", Amount: dec("10")}}
	out := reconcile.CascadeExpenses(expenses, "other")
	assert.Equal(t, expenses, out)
}

// Invariant: after any sequence of operations, each balance equals the
// initial balance minus the sum of expenses currently attributed to it.
// The expense ledger is maintained in parallel by the test.
func TestInvariantPreservedAcrossOperationSequence(t *testing.T) {
	accounts := []domain.Account{
		{ID: "a1", Balance: dec("500")},
		{ID: "a2", Balance: dec("250")},
	}
	initial := map[string]decimal.Decimal{"a1": dec("500"), "a2": dec("250")}
	ledger := map[string]domain.Expense{}

	checkInvariant := func() {
		t.Helper()
		sums := map[string]decimal.Decimal{"a1": decimal.Zero, "a2": decimal.Zero}
		for _, e := range ledger {
			sums[e.AccountID] = sums[e.AccountID].Add(e.Amount)
		}
		for id, init := range initial {
			want := init.Sub(sums[id])
			got := balanceOf(t, accounts, id)
			require.True(t, got.Equal(want), "account %s: balance %s, want %s", id, got, want)
		}
	}

	add := func(id, accountID, amount string) {
		accounts, _ = reconcile.ApplyAdd(accounts, accountID, dec(amount))
		ledger[id] = domain.Expense{ID: id, AccountID: accountID, Amount: dec(amount)}
		checkInvariant()
	}
	update := func(id, newAccountID, newAmount string) {
		old := ledger[id]
		accounts = reconcile.ApplyUpdate(accounts, old.AccountID, old.Amount, newAccountID, dec(newAmount))
		ledger[id] = domain.Expense{ID: id, AccountID: newAccountID, Amount: dec(newAmount)}
		checkInvariant()
	}
	del := func(id string) {
		old := ledger[id]
		accounts, _ = reconcile.ApplyDelete(accounts, old.AccountID, old.Amount)
		delete(ledger, id)
		checkInvariant()
	}

	add("e1", "a1", "19.99")
	add("e2", "a2", "100")
	add("e3", "a1", "0.01")
	update("e1", "a1", "25")
	update("e2", "a1", "100")
	update("e3", "a2", "7.77")
	del("e1")
	add("e4", "a2", "33.33")
	update("e4", "a2", "66.66")
	del("e2")
	del("e3")
	del("e4")
}

// End-to-end scenario from the life of one expense.
func TestSingleExpenseLifecycle(t *testing.T) {
	accounts := []domain.Account{{ID: "a1", Balance: dec("100")}}

	// Add expense of 30 against a1.
	accounts, found := reconcile.ApplyAdd(accounts, "a1", dec("30"))
	require.True(t, found)
	assert.True(t, balanceOf(t, accounts, "a1").Equal(dec("70")))

	// Raise its amount to 50.
	accounts = reconcile.ApplyUpdate(accounts, "a1", dec("30"), "a1", dec("50"))
	assert.True(t, balanceOf(t, accounts, "a1").Equal(dec("50")))

	// Move it to a freshly created account a2 with balance 0.
	accounts = append(accounts, domain.Account{ID: "a2", Balance: decimal.Zero})
	accounts = reconcile.ApplyUpdate(accounts, "a1", dec("50"), "a2", dec("50"))
	assert.True(t, balanceOf(t, accounts, "a1").Equal(dec("100")))
	assert.True(t, balanceOf(t, accounts, "a2").Equal(dec("-50")))

	// Delete it.
	accounts, found = reconcile.ApplyDelete(accounts, "a2", dec("50"))
	require.True(t, found)
	assert.True(t, balanceOf(t, accounts, "a2").Equal(dec("0")))
}

// Repeated add/credit cycles must not drift: decimal arithmetic round-trips
// exactly where float64 would accumulate error.
func TestNoDriftUnderRepeatedCycles(t *testing.T) {
	accounts := []domain.Account{{ID: "a1", Balance: dec("100")}}
	amount := dec("0.10")
	for i := 0; i < 1000; i++ {
		accounts, _ = reconcile.ApplyAdd(accounts, "a1", amount)
		accounts, _ = reconcile.ApplyDelete(accounts, "a1", amount)
	}
	assert.True(t, balanceOf(t, accounts, "a1").Equal(dec("100")))
}
