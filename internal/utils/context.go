// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UsernameCtxKey is the key used to store the authenticated username in
// the request context. Set by the auth middleware after a token has been
// verified; read back with GetUsernameFromContext.
var UsernameCtxKey = contextKey("username")

// ScopeCtxKey is the key used to store the authenticated identity's scope
// set in the request context. Set by the auth middleware alongside
// UsernameCtxKey; read back with GetScopeFromContext.
var ScopeCtxKey = contextKey("scope")

// GetUsernameFromContext retrieves the authenticated username from the
// context.
//
// Returns the username and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// GetScopeFromContext retrieves the authenticated identity's scope set
// from the context.
//
// Returns the scope slice and an ok flag with the same semantics as
// GetUsernameFromContext.
func GetScopeFromContext(ctx context.Context) ([]string, bool) {
	scope, ok := ctx.Value(ScopeCtxKey).([]string)
	return scope, ok
}
