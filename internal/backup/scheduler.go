// Package backup implements the automatic cloud-backup trigger: on
// application start, decide from the stored frequency setting and the
// last-backup timestamp whether a backup is due, and run it if so.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_app/internal/dto"
	"github.com/spendtrail/spendtrail_app/internal/middleware"
)

// Frequency is the user-selected automatic backup cadence.
type Frequency string

const (
	Manual  Frequency = "manual"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

const day = 24 * time.Hour

// ParseFrequency validates a stored or user-supplied frequency value.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Manual, Daily, Weekly, Monthly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("invalid backup frequency %q: %w", s, apperrors.ErrValidation)
}

// Interval returns the elapsed-time threshold for the frequency, or false
// for manual (never automatically due).
func (f Frequency) Interval() (time.Duration, bool) {
	switch f {
	case Daily:
		return day, true
	case Weekly:
		return 7 * day, true
	case Monthly:
		return 30 * day, true
	}
	return 0, false
}

// Due reports whether a backup should run now. A zero last timestamp means
// the user has never backed up, which counts as due for any automatic
// frequency.
func Due(freq Frequency, last time.Time, now time.Time) bool {
	interval, auto := freq.Interval()
	if !auto {
		return false
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= interval
}

// StoredAuth is the login state kept in the local store.
type StoredAuth struct {
	Email string `json:"email"`
	Token string `json:"token"`
	UID   string `json:"uid"`
}

// Uploader is the slice of the API client the scheduler needs.
type Uploader interface {
	Backup(ctx context.Context, token string, snapshot dto.BackupRequest) (*dto.BackupResponse, error)
}

// Scheduler runs the due-check-then-backup sequence against the local store
// and the backend.
type Scheduler struct {
	store portsrepo.LedgerStore
	api   Uploader
	now   func() time.Time
}

// NewScheduler creates a Scheduler. The clock defaults to time.Now.
func NewScheduler(store portsrepo.LedgerStore, api Uploader) *Scheduler {
	return &Scheduler{store: store, api: api, now: time.Now}
}

// RunIfDue performs a backup when one is due, recording the new last-backup
// timestamp on success. It returns whether a backup ran. Not being logged
// in, a manual frequency, or no frequency setting at all are quiet no-ops.
func (s *Scheduler) RunIfDue(ctx context.Context) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	auth, err := s.loadAuth(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	freqRaw, err := s.store.GetSetting(ctx, portsrepo.SettingBackupFrequency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	freq, err := ParseFrequency(freqRaw)
	if err != nil {
		logger.Warn("Ignoring invalid stored backup frequency", slog.String("value", freqRaw))
		return false, nil
	}

	var last time.Time
	if lastRaw, err := s.store.GetSetting(ctx, portsrepo.SettingLastBackup); err == nil {
		if parsed, perr := time.Parse(time.RFC3339, lastRaw); perr == nil {
			last = parsed
		} else {
			logger.Warn("Ignoring unparseable last-backup timestamp", slog.String("value", lastRaw))
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	now := s.now()
	if !Due(freq, last, now) {
		return false, nil
	}

	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load expenses for backup: %w", err)
	}
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load accounts for backup: %w", err)
	}

	if _, err := s.api.Backup(ctx, auth.Token, dto.BackupRequest{Expenses: expenses, Accounts: accounts}); err != nil {
		return false, fmt.Errorf("automatic backup failed: %w", err)
	}

	if err := s.store.PutSetting(ctx, portsrepo.SettingLastBackup, now.Format(time.RFC3339)); err != nil {
		return true, fmt.Errorf("backup succeeded but failed to record timestamp: %w", err)
	}

	logger.Info("Automatic backup completed",
		slog.String("frequency", string(freq)),
		slog.Int("expenses", len(expenses)),
		slog.Int("accounts", len(accounts)))
	return true, nil
}

func (s *Scheduler) loadAuth(ctx context.Context) (*StoredAuth, error) {
	raw, err := s.store.GetSetting(ctx, portsrepo.SettingUserAuth)
	if err != nil {
		return nil, err
	}
	var auth StoredAuth
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		return nil, fmt.Errorf("failed to decode stored auth: %w", err)
	}
	if auth.Token == "" {
		return nil, apperrors.ErrNotFound
	}
	return &auth, nil
}
