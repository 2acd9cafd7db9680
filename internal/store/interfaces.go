package store

import (
	"context"

	"github.com/apollo-kit/userd/models"
)

// UserRepository is the access contract the core requires from the
// credential store: a persistent mapping from username to user record.
//
// Records passed to Save are expected to already carry a hashed
// password; hashing is the user directory's job, never the store's.
type UserRepository interface {
	// Get returns the record stored under username.
	// Returns [ErrUserNotFound] when the key is absent, or a wrapped
	// driver error for any other store failure. A record is either
	// returned whole or not at all.
	Get(ctx context.Context, username string) (models.User, error)

	// Save writes the record under its username, fully overwriting any
	// existing record with the same key (last-writer-wins, no merge).
	Save(ctx context.Context, user models.User) error

	// Delete removes the record stored under username.
	// Returns [ErrUserNotFound] when nothing was deleted.
	Delete(ctx context.Context, username string) error

	// GetAll returns a snapshot of every stored record. Row-level
	// failures encountered during the scan are accumulated and returned
	// alongside the successfully read records instead of aborting the
	// scan.
	GetAll(ctx context.Context) ([]models.User, []error)
}
