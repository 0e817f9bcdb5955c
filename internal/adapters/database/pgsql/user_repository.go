package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
)

// UserRepository persists backup users in PostgreSQL.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, email, password_hash, provider, created_at, last_login_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id) DO UPDATE SET
            email = EXCLUDED.email,
            password_hash = EXCLUDED.password_hash,
            last_login_at = EXCLUDED.last_login_at;
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.PasswordHash,
		string(user.Provider),
		user.CreatedAt,
		user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT user_id, email, password_hash, provider, created_at, last_login_at
        FROM users
        WHERE email = $1;
    `
	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
        SELECT user_id, email, password_hash, provider, created_at, last_login_at
        FROM users
        WHERE user_id = $1;
    `
	user, err := r.scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func (r *UserRepository) MarkUserLogin(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_login_at = $2 WHERE user_id = $1;`
	tag, err := r.db.Exec(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark user login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var provider string
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&provider,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	user.Provider = domain.AuthProvider(provider)
	return &user, nil
}
