package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderPassword AuthProvider = "PASSWORD"
	ProviderGoogle   AuthProvider = "GOOGLE"
)

// User is a registered backup user on the backend.
// PasswordHash is empty for users created through an OAuth provider.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Provider     AuthProvider `json:"provider"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  time.Time    `json:"lastLoginAt"`
}
