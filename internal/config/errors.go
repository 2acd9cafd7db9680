package config

import (
	"errors"
	"time"
)

// defaultTokenDuration is the TTL applied to issued tokens when no
// duration is configured.
const defaultTokenDuration = time.Hour

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrMissingTokenSignKey indicates no JWT signing key was provided by
	// any configuration source.
	ErrMissingTokenSignKey = errors.New("token sign key is required")

	// ErrMissingPasswordHashKey indicates HMAC password hashing is
	// selected but no hash key was provided.
	ErrMissingPasswordHashKey = errors.New("password hash key is required")

	// ErrUnknownHashAlgorithm indicates the configured password hash
	// algorithm is not one of the supported names.
	ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")
)
