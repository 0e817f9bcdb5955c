package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/dto"
)

const dateLayout = "2006-01-02"

var (
	// Expense flags
	expenseAmount      string
	expenseDate        string
	expenseCategory    string
	expenseItem        string
	expenseDescription string
	expenseAccountID   string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record and manage expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Long: `Record a new expense against an account. The account balance is reduced
by the expense amount.

Examples:
  spendtrail expense add --amount 12.50 --account <id> --category Food --item Lunch
  spendtrail expense add --amount 40 --account <id> --date 2026-08-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(expenseAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", expenseAmount, err)
		}
		date, err := parseDateOrToday(expenseDate)
		if err != nil {
			return err
		}

		expense, err := current.ledger.AddExpense(current.ctx, dto.CreateExpenseRequest{
			Amount:      amount,
			Date:        date,
			Category:    expenseCategory,
			Item:        expenseItem,
			Description: expenseDescription,
			AccountID:   expenseAccountID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Recorded expense %s (%s on %s)\n", expense.ID, expense.Amount.StringFixed(2), expense.Date.Format(dateLayout))
		return nil
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		expenses, err := current.ledger.ListExpenses(current.ctx)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("No expenses recorded.")
			return nil
		}

		accounts, err := current.ledger.ListAccounts(current.ctx)
		if err != nil {
			return err
		}
		names := make(map[string]string, len(accounts))
		for _, a := range accounts {
			names[a.ID] = a.Name
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tITEM\tACCOUNT")
		for _, e := range expenses {
			account := names[e.AccountID]
			if account == "" {
				account = e.AccountID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Date.Format(dateLayout), e.Amount.StringFixed(2), e.Category, e.Item, account)
		}
		return w.Flush()
	},
}

var expenseUpdateCmd = &cobra.Command{
	Use:   "update <expense-id>",
	Short: "Edit an expense",
	Long: `Edit an expense. Only the provided flags change. Changing the amount or
the account re-adjusts the affected account balances.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateExpenseRequest

		if cmd.Flags().Changed("amount") {
			amount, err := decimal.NewFromString(expenseAmount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", expenseAmount, err)
			}
			req.Amount = &amount
		}
		if cmd.Flags().Changed("date") {
			date, err := time.Parse(dateLayout, expenseDate)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", expenseDate, err)
			}
			req.Date = &date
		}
		if cmd.Flags().Changed("category") {
			req.Category = &expenseCategory
		}
		if cmd.Flags().Changed("item") {
			req.Item = &expenseItem
		}
		if cmd.Flags().Changed("description") {
			req.Description = &expenseDescription
		}
		if cmd.Flags().Changed("account") {
			req.AccountID = &expenseAccountID
		}

		expense, err := current.ledger.UpdateExpense(current.ctx, args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated expense %s (%s on %s)\n", expense.ID, expense.Amount.StringFixed(2), expense.Date.Format(dateLayout))
		return nil
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <expense-id>",
	Short: "Delete an expense",
	Long:  `Delete an expense and credit its amount back to the account it was attributed to.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.ledger.DeleteExpense(current.ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted expense %s\n", args[0])
		return nil
	},
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return date, nil
}

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, expenseUpdateCmd} {
		c.Flags().StringVar(&expenseAmount, "amount", "", "Expense amount, e.g. 12.50")
		c.Flags().StringVar(&expenseDate, "date", "", "Expense date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&expenseCategory, "category", "", "Category, e.g. Food")
		c.Flags().StringVar(&expenseItem, "item", "", "Item, e.g. Lunch")
		c.Flags().StringVar(&expenseDescription, "description", "", "Free-form note")
		c.Flags().StringVar(&expenseAccountID, "account", "", "ID of the account to attribute the expense to")
	}
	expenseAddCmd.MarkFlagRequired("amount")
	expenseAddCmd.MarkFlagRequired("account")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseUpdateCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}
