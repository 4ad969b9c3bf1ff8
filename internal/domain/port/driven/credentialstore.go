// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
)

// Sentinel errors returned by CredentialStore implementations.
var (
	// ErrUserNotFound indicates no account is stored under the given key.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates an account is already stored under the key.
	ErrUserAlreadyExists = errors.New("username already exists")
)

// CredentialStore defines the driven port for account storage. Records are
// addressed by a lookup key, which is the username the account was created
// with. Implementations must be safe for concurrent use.
type CredentialStore interface {
	// Create stores user under user.Username. Returns ErrUserAlreadyExists if
	// that key is taken.
	Create(ctx context.Context, user model.User) error

	// Get returns the record stored under key, or ErrUserNotFound.
	Get(ctx context.Context, key string) (*model.User, error)

	// Update replaces the record stored under key with user. The key itself
	// does not change, even when user.Username differs from it.
	// Returns ErrUserNotFound if nothing is stored under key.
	Update(ctx context.Context, key string, user model.User) error

	// Delete removes the record stored under key, or returns ErrUserNotFound.
	Delete(ctx context.Context, key string) error

	// List returns every lookup key in insertion order.
	List(ctx context.Context) ([]string, error)
}
