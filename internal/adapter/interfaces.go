// Package adapter provides a client-side abstraction for talking to a
// running userd server.
//
// The primary abstraction is [ServerAdapter], which decouples callers
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from the response
// envelope's result code by mapResponseError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g.
// [ErrUnauthorized] for a rejected token, [ErrNotFound] for a missing
// user).
package adapter

import (
	"context"

	"github.com/apollo-kit/userd/models"
)

// ServerAdapter defines transport-agnostic communication with the userd
// server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors
// to the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically
	// after a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter,
	// or an empty string if no token has been set yet.
	Token() string

	// Login authenticates with the server and stores the returned token
	// via SetToken. Returns [ErrBadCredentials] when the server rejects
	// the username/password pair.
	Login(ctx context.Context, username, password string) (models.Token, error)

	// Logout invalidates the server-side session for the stored token
	// and clears the token held by the adapter. It succeeds even when
	// no token is held.
	Logout(ctx context.Context) error

	// Users fetches the full sanitized user listing. Requires a token
	// with the "admin" scope.
	Users(ctx context.Context) ([]models.User, error)

	// PutUser creates or fully replaces the record for user.Username.
	// Requires a token with the "admin" scope.
	PutUser(ctx context.Context, user models.User) error

	// DeleteUser removes the record for username. Returns [ErrNotFound]
	// when the user does not exist. Requires a token with the "admin"
	// scope.
	DeleteUser(ctx context.Context, username string) error

	// ChangePassword sets a new password for the identity the stored
	// token belongs to.
	ChangePassword(ctx context.Context, newPassword string) error
}
