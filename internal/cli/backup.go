package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/backup"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Push the local ledger to the backend",
	Long: `Push the full local ledger to the backend, replacing any previously
stored snapshot for this user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := loadStoredAuth()
		if err != nil {
			return err
		}

		expenses, err := current.store.GetExpenses(current.ctx)
		if err != nil {
			return err
		}
		accounts, err := current.store.GetAccounts(current.ctx)
		if err != nil {
			return err
		}

		if _, err := current.api.Backup(current.ctx, auth.Token, dto.BackupRequest{
			Expenses: expenses,
			Accounts: accounts,
		}); err != nil {
			return err
		}

		if err := current.store.PutSetting(current.ctx, portsrepo.SettingLastBackup, time.Now().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("backup succeeded but failed to record timestamp: %w", err)
		}

		fmt.Printf("Backed up %d expenses and %d accounts.\n", len(expenses), len(accounts))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the local ledger with the stored backup",
	Long: `Fetch the stored snapshot from the backend and replace the local ledger
with it. The local ledger is only touched after the snapshot has been fully
downloaded and decoded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := loadStoredAuth()
		if err != nil {
			return err
		}

		snapshot, err := current.api.Restore(current.ctx, auth.Token)
		if err != nil {
			return err
		}

		if err := current.store.SaveExpenses(current.ctx, snapshot.Expenses); err != nil {
			return err
		}
		if err := current.store.SaveAccounts(current.ctx, snapshot.Accounts); err != nil {
			return err
		}

		fmt.Printf("Restored %d expenses and %d accounts from backup taken %s.\n",
			len(snapshot.Expenses), len(snapshot.Accounts), snapshot.UpdatedAt.Format(time.RFC3339))
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change client settings",
}

var backupFrequencyCmd = &cobra.Command{
	Use:   "backup-frequency [manual|daily|weekly|monthly]",
	Short: "Show or set the automatic backup frequency",
	Long: `Show or set the automatic backup frequency. With a frequency other than
manual, a backup runs on start once the configured interval has elapsed
since the last one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			freq, err := current.store.GetSetting(current.ctx, portsrepo.SettingBackupFrequency)
			if err != nil {
				fmt.Println("Automatic backup is not configured.")
				return nil
			}
			fmt.Printf("Automatic backup frequency: %s\n", freq)
			return nil
		}

		freq, err := backup.ParseFrequency(args[0])
		if err != nil {
			return err
		}
		if err := current.store.PutSetting(current.ctx, portsrepo.SettingBackupFrequency, string(freq)); err != nil {
			return err
		}
		fmt.Printf("Automatic backup frequency set to %s.\n", freq)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(backupFrequencyCmd)
	rootCmd.AddCommand(backupCmd, restoreCmd, settingsCmd)
}
