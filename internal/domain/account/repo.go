package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no account matches a lookup.
	ErrNotFound = errors.New("account not found")
	// ErrUsernameTaken is returned when the username is already registered.
	// The unique index on users.username is the authoritative guard; the
	// service's pre-insert check only produces a friendlier fast path.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrEmailTaken is the email counterpart, backed by the unique index on
	// lower(email).
	ErrEmailTaken = errors.New("email already registered")
)

type AccountRepository interface {
	// Create inserts the account. A storage-level uniqueness violation is
	// reported as ErrUsernameTaken or ErrEmailTaken.
	Create(ctx context.Context, a *Account) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	// ExistsEmail expects an already-normalized email.
	ExistsEmail(ctx context.Context, email string) (bool, error)
}
