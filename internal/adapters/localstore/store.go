// Package localstore is the client-side persistence surface: a SQLite-backed
// key-value store holding the expense and account collections as
// whole-collection JSON snapshots under fixed keys, plus a handful of
// settings. There are no partial updates; every mutation rewrites the
// entire collection, matching the snapshot semantics of the mobile app's
// storage layer.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
)

const (
	expensesKey = "expenses"
	accountsKey = "accounts"
)

// Store wraps a SQLite connection holding a single kv table.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if necessary) the store at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

var _ portsrepo.LedgerStore = (*Store)(nil)

func (s *Store) GetExpenses(ctx context.Context) ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := s.getJSON(ctx, expensesKey, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

func (s *Store) SaveExpenses(ctx context.Context, expenses []domain.Expense) error {
	return s.putJSON(ctx, expensesKey, expenses)
}

func (s *Store) GetAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := s.getJSON(ctx, accountsKey, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	return s.putJSON(ctx, accountsKey, accounts)
}

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// getJSON reads a collection snapshot; an absent key yields the zero value,
// matching "no data yet means empty list".
func (s *Store) getJSON(ctx context.Context, key string, dest any) error {
	raw, err := s.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to decode %s snapshot: %w", key, err)
	}
	return nil
}

func (s *Store) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", key, err)
	}
	return s.PutSetting(ctx, key, string(raw))
}
