package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting
// the token from a request. Callers can match against them with
// [errors.Is].
var (
	// ErrNoTokenProvided is returned when the request carries neither an
	// "Authorization" header nor a "token" cookie.
	ErrNoTokenProvided = errors.New("no token in `Authorization` header or `token` cookie")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but its value cannot be parsed as a bearer
	// token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidUsername is returned when a path username fails the
	// alphanumeric check.
	ErrInvalidUsername = errors.New("username must be alphanumeric")
)
