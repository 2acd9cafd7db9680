package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/apollo-kit/userd/internal/config"
	"github.com/apollo-kit/userd/internal/utils"
)

// hmacHasher is the default [PasswordHasher]: keyed HMAC-SHA256, hex
// encoded. The digest is deterministic, so the stored form of a password
// is byte-for-byte comparable across writes, and comparison reduces to
// constant-time digest equality.
type hmacHasher struct {
	hashKey string
}

// NewHMACHasher constructs the deterministic HMAC-SHA256 hasher keyed
// with the process-wide password hash key.
func NewHMACHasher(hashKey string) PasswordHasher {
	return &hmacHasher{hashKey: hashKey}
}

func (h *hmacHasher) Hash(clearPassword string) (string, error) {
	return utils.HashString(clearPassword, h.hashKey), nil
}

func (h *hmacHasher) Compare(hashed, clearPassword string) bool {
	return utils.HashEqual(hashed, utils.HashString(clearPassword, h.hashKey))
}

// bcryptHasher is the salted, adaptive [PasswordHasher]. Digests are not
// deterministic (each Hash call salts anew), so comparison goes through
// bcrypt's own verification rather than digest equality.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs the bcrypt hasher with the default cost.
func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (b *bcryptHasher) Hash(clearPassword string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(clearPassword), b.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(digest), nil
}

func (b *bcryptHasher) Compare(hashed, clearPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(clearPassword)) == nil
}

// NewPasswordHasher selects the hasher implementation named by the
// configuration. Unknown names fail config validation before reaching
// this point; the HMAC hasher is the fallback.
func NewPasswordHasher(cfg config.App) PasswordHasher {
	if cfg.PasswordHashAlg == config.HashAlgBcrypt {
		return NewBcryptHasher()
	}
	return NewHMACHasher(cfg.PasswordHashKey)
}
