package domain

import (
	"context"
)

type LedgerRepository interface {
	// Load returns the user's ledger. An unknown user yields an empty ledger, not an error.
	Load(ctx context.Context, username string) (Ledger, error)
	// Save replaces the user's whole ledger. Concurrent writers are last-write-wins.
	Save(ctx context.Context, username string, ledger Ledger) error
}

type UserRepository interface {
	// Create stores a new user; ErrUserAlreadyExists when the username is taken.
	Create(ctx context.Context, user *User) error
	// GetByUsername returns ErrUserNotFound when nobody has logged in with that name.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
