package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the structured payload embedded in a signed token: subject
// identity, scope, and the registered timestamp claims (iat, exp).
//
// The type deliberately has no field for a password, so credential
// material cannot end up inside a token even when the source user
// record carries one in memory.
type Claims struct {
	// Username duplicates the "sub" registered claim for convenient
	// access without string conversions.
	Username string `json:"username"`

	// Scope is the set of role strings carried over from the user record
	// at issuance time. Authorization decisions on later requests are
	// made from this embedded copy, not from the store.
	Scope []string `json:"scope"`

	jwt.RegisteredClaims
}

// Token wraps a JWT token with convenience accessors for authentication
// flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or
// stored in a cookie on the client side.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
