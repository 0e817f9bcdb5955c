package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/backup"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backup backend",
	Long: `Log in to the backup backend. Unknown emails are registered
automatically. The session token is stored locally and used by backup,
restore and automatic backups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}

		resp, err := current.api.Login(current.ctx, loginEmail, password)
		if err != nil {
			return err
		}

		auth := backup.StoredAuth{Email: loginEmail, Token: resp.Token, UID: resp.UID}
		raw, err := json.Marshal(auth)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		if err := current.store.PutSetting(current.ctx, portsrepo.SettingUserAuth, string(raw)); err != nil {
			return err
		}

		if resp.Message != "" {
			fmt.Println(resp.Message)
		} else {
			fmt.Printf("Logged in as %s\n", loginEmail)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store.DeleteSetting(current.ctx, portsrepo.SettingUserAuth); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// loadStoredAuth returns the stored session or a friendly error when the
// user never logged in.
func loadStoredAuth() (*backup.StoredAuth, error) {
	raw, err := current.store.GetSetting(current.ctx, portsrepo.SettingUserAuth)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errors.New("not logged in, run 'spendtrail login' first")
		}
		return nil, err
	}
	var auth backup.StoredAuth
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		return nil, fmt.Errorf("failed to decode stored session: %w", err)
	}
	if auth.Token == "" {
		return nil, errors.New("not logged in, run 'spendtrail login' first")
	}
	return &auth, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
	loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, logoutCmd)
}
