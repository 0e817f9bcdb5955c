package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/dto"
)

var (
	// Account flags
	accountName    string
	accountType    string
	accountBalance string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Long: `Create an account with an initial balance. The balance is the baseline
that expenses attributed to the account are reconciled against.

Examples:
  spendtrail account add --name Checking --type bank --balance 1200
  spendtrail account add --name Wallet --type cash --balance 85.50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		balance := decimal.Zero
		if accountBalance != "" {
			var err error
			balance, err = decimal.NewFromString(accountBalance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", accountBalance, err)
			}
		}

		account, err := current.ledger.CreateAccount(current.ctx, dto.CreateAccountRequest{
			Name:    accountName,
			Type:    accountType,
			Balance: balance,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created account %s (%s, balance %s)\n", account.ID, account.Name, account.Balance.StringFixed(2))
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts and the total balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := current.ledger.ListAccounts(current.ctx)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.Balance.StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		total, err := current.ledger.TotalBalance(current.ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nTotal balance: %s\n", total.StringFixed(2))
		return nil
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update <account-id>",
	Short: "Edit an account",
	Long: `Edit an account. Only the provided flags change. Setting --balance
overwrites the stored balance and becomes the new reconciliation baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateAccountRequest
		if cmd.Flags().Changed("name") {
			req.Name = &accountName
		}
		if cmd.Flags().Changed("type") {
			req.Type = &accountType
		}
		if cmd.Flags().Changed("balance") {
			balance, err := decimal.NewFromString(accountBalance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", accountBalance, err)
			}
			req.Balance = &balance
		}

		account, err := current.ledger.UpdateAccount(current.ctx, args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated account %s (%s, balance %s)\n", account.ID, account.Name, account.Balance.StringFixed(2))
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete an account and its expenses",
	Long:  `Delete an account. Every expense attributed to the account is deleted with it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.ledger.DeleteAccount(current.ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted account %s and its expenses\n", args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{accountAddCmd, accountUpdateCmd} {
		c.Flags().StringVar(&accountName, "name", "", "Account name, e.g. Checking")
		c.Flags().StringVar(&accountType, "type", "", "Account type, e.g. bank, cash, card")
		c.Flags().StringVar(&accountBalance, "balance", "", "Balance, e.g. 1200.00")
	}
	accountAddCmd.MarkFlagRequired("name")
	accountAddCmd.MarkFlagRequired("type")

	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountUpdateCmd, accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}
