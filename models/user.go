package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// Username is the unique user identifier and the primary key in the
	// store. It is immutable after creation: renaming a user means
	// deleting the record and creating a new one.
	Username string `json:"username"`

	// Password carries the clear-text password on inbound requests only
	// (login, user creation, password change). It is never persisted and
	// never included in responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the stored form of the password, produced by the
	// configured hasher inside the user directory's write path.
	// It is never serialized to JSON.
	PasswordHash string `json:"-"`

	// Email is the user's contact address. Optional.
	Email string `json:"email,omitempty"`

	// Scope is the set of role strings (e.g. "admin", "normal") granting
	// authorization for specific routes. It is not part of the identity.
	Scope []string `json:"scope"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user with every credential field
// cleared. All records leaving the user directory pass through it.
func (u User) Sanitized() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
