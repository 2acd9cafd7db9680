package service

import (
	"context"

	"github.com/apollo-kit/userd/models"
)

// UserService is the user directory: the single owner of the user record
// lifecycle and the only place password hashing is applied.
type UserService interface {
	// Get returns the stored record for username, including the password
	// hash. Intended for in-process callers (credential validation);
	// records leaving the process go through [models.User.Sanitized].
	Get(ctx context.Context, username string) (models.User, error)

	// Add hashes the clear-text password carried in user.Password exactly
	// once and writes the record, overwriting any existing record with
	// the same username. Callers must not pre-hash.
	Add(ctx context.Context, user models.User) error

	// Remove deletes the record for username, reporting
	// [store.ErrUserNotFound] distinctly when the user never existed.
	Remove(ctx context.Context, username string) error

	// GetAll returns a sanitized snapshot of every stored record plus the
	// list of store-level errors encountered while scanning. The scan is
	// not aborted by row-level failures.
	GetAll(ctx context.Context) ([]models.User, []error)

	// ChangePassword re-hashes newPassword and stores it for username.
	ChangePassword(ctx context.Context, username, newPassword string) error
}

// AuthService handles credential validation and the token lifecycle.
type AuthService interface {
	// ValidateCredentials decides whether username/clearPassword match a
	// stored record. Outcomes are distinguishable via [errors.Is]:
	// nil (match, record returned), [ErrNoSuchUser], [ErrWrongPassword],
	// or a wrapped store error.
	ValidateCredentials(ctx context.Context, username, clearPassword string) (models.User, error)

	// CreateToken issues a signed token for the given (validated) user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken verifies a raw token string and returns its claims.
	// Failures map to [ErrTokenExpired], [ErrTokenSignatureInvalid], or
	// [ErrTokenMalformed].
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Logout clears any server-side session state held for username.
	// Unconditionally successful: logging out a user with no session (or
	// an already invalid token) is not an error.
	Logout(ctx context.Context, username string)
}

// TokenStrategy abstracts how credential certificates are produced and
// checked, so the transport layer and the authorization gate depend only
// on this interface. The default implementation is stateless JWT; other
// schemes (opaque server-side sessions) can be swapped in without
// touching handlers.
type TokenStrategy interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	Verify(ctx context.Context, tokenString string) (models.Token, error)
}

// PasswordHasher turns clear-text passwords into their stored form and
// checks submitted passwords against stored digests.
//
// Implementations may be deterministic (HMAC-SHA256, where equal digests
// imply equal passwords) or salted/adaptive (bcrypt); Compare hides the
// difference from callers.
type PasswordHasher interface {
	Hash(clearPassword string) (string, error)
	Compare(hashed, clearPassword string) bool
}

// ValidateFunc is an optional predicate a [TokenStrategy] runs after
// signature and expiry checks succeed, e.g. to cross-reference the user
// directory. Returning an error rejects the token.
type ValidateFunc func(ctx context.Context, token models.Token) error
