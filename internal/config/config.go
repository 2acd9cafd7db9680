package config

import (
	"time"
)

// Hash algorithm names accepted by [App.PasswordHashAlg].
const (
	// HashAlgHMAC selects deterministic HMAC-SHA256 password hashing.
	// Digest equality implies password equality, which the credential
	// comparison contract relies on. Default.
	HashAlgHMAC = "hmac-sha256"

	// HashAlgBcrypt selects salted, adaptive bcrypt hashing. A hardening
	// option; records written with one algorithm do not verify under the
	// other.
	HashAlgBcrypt = "bcrypt"
)

// StructuredConfig is the top-level configuration container for the
// userd application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as cryptographic keys
	// and token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the user record store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security
// and token lifecycle.
type App struct {
	// PasswordHashKey is the secret key used when hashing user passwords
	// with HMAC-SHA256. Must be kept confidential.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// PasswordHashAlg selects the password hashing algorithm, one of
	// [HashAlgHMAC] (default) or [HashAlgBcrypt].
	// Env: APP_PASSWORD_HASH_ALG
	PasswordHashAlg string `env:"PASSWORD_HASH_ALG"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m"). Defaults to one hour.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SessionCache enables the server-side session cache keyed by
	// username. The cache is auxiliary: token verification stays
	// stateless, the cache only records the most recently issued token
	// per user and is cleared on logout.
	// Env: APP_SESSION_CACHE
	SessionCache bool `env:"SESSION_CACHE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the user store connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the user record store.
type DB struct {
	// DSN selects and configures the store backend. A "postgres://"
	// prefix selects the pgx driver; anything else is treated as a
	// SQLite file path. Defaults to "./user.db".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format. Defaults to ":8989".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
