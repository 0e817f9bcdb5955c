// Package cli implements the spendtrail command line client. Commands run
// against the local SQLite ledger; login, backup and restore talk to the
// backend through the API client.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/adapters/localstore"
	"github.com/spendtrail/spendtrail_app/internal/backup"
	"github.com/spendtrail/spendtrail_app/internal/client"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
	"github.com/spendtrail/spendtrail_app/internal/middleware"
	"github.com/spendtrail/spendtrail_app/pkg/config"
)

var (
	// Global flags
	dataPath string
	apiURL   string
	verbose  bool
)

// app holds the wired-up dependencies shared by every command.
type app struct {
	ctx     context.Context
	store   *localstore.Store
	ledger  portssvc.LedgerSvc
	reports portssvc.ReportingSvc
	api     *client.APIClient
}

var current *app

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spendtrail",
	Short: "Track expenses against account balances",
	Long: `spendtrail keeps a local ledger of accounts and expenses. Every expense
is attributed to an account and the account balance is adjusted as expenses
are added, edited, deleted or cascaded away with their account.

Data lives in a local SQLite file. An optional backend account lets you back
the ledger up and restore it on another machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupApp(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil && current.store != nil {
			current.store.Close()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the local ledger database (default ~/.spendtrail/spendtrail.db)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (default from API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func setupApp(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := middleware.ContextWithLogger(cmd.Context(), logger)

	store, err := localstore.Open(cfg.DataPath)
	if err != nil {
		return err
	}

	current = &app{
		ctx:     ctx,
		store:   store,
		ledger:  services.NewLedgerService(store),
		reports: services.NewReportingService(store),
		api:     client.New(cfg.APIBaseURL, cfg.HTTPTimeout),
	}

	runAutoBackup(current, logger)
	return nil
}

// runAutoBackup fires the due-check on every start. Failures never block the
// command the user actually asked for.
func runAutoBackup(a *app, logger *slog.Logger) {
	scheduler := backup.NewScheduler(a.store, a.api)
	ran, err := scheduler.RunIfDue(a.ctx)
	if err != nil {
		logger.Warn("Automatic backup did not complete", slog.String("error", err.Error()))
		return
	}
	if ran {
		fmt.Fprintln(os.Stderr, "Automatic backup completed.")
	}
}
