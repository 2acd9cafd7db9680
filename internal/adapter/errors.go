package adapter

import "errors"

var (
	// ErrBadCredentials is returned by Login when the server rejects the
	// username/password pair.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrUnauthorized is returned when the stored token is missing,
	// expired, or otherwise rejected by the server.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is returned when the stored token verified but its
	// scope does not permit the requested operation.
	ErrForbidden = errors.New("insufficient scope")

	// ErrNotFound is returned when the addressed user does not exist.
	ErrNotFound = errors.New("user not found")
)
