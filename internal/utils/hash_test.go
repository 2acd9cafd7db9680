package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashString_Deterministic verifies that hashing the same input with the
// same key always produces the same digest.
func TestHashString_Deterministic(t *testing.T) {
	const key = "test-key"

	first := HashString("wonderland", key)
	second := HashString("wonderland", key)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

// TestHashString_DistinctInputs verifies that different inputs produce
// different digests under the same key.
func TestHashString_DistinctInputs(t *testing.T) {
	const key = "test-key"

	assert.NotEqual(t, HashString("wonderland", key), HashString("Wonderland", key))
	assert.NotEqual(t, HashString("a", key), HashString("b", key))
}

// TestHashString_KeyMatters verifies that the same input hashed with
// different keys produces different digests.
func TestHashString_KeyMatters(t *testing.T) {
	assert.NotEqual(t, HashString("secret", "key-one"), HashString("secret", "key-two"))
}

// TestHashString_PrintableASCIIRoundTrip exercises the round-trip property
// over a spread of printable ASCII passwords.
func TestHashString_PrintableASCIIRoundTrip(t *testing.T) {
	const key = "round-trip-key"

	passwords := []string{
		"password", "P@ssw0rd!", " ", "~!@#$%^&*()_+", "1234567890",
		"correct horse battery staple",
	}

	for _, pass := range passwords {
		digest := HashString(pass, key)
		assert.Equal(t, digest, HashString(pass, key), "password %q", pass)
		assert.Len(t, digest, 64, "hex HMAC-SHA256 digest length")
	}
}

// TestHashEqual verifies the constant-time digest comparison helper.
func TestHashEqual(t *testing.T) {
	const key = "eq-key"

	digest := HashString("value", key)

	assert.True(t, HashEqual(digest, HashString("value", key)))
	assert.False(t, HashEqual(digest, HashString("other", key)))
	assert.False(t, HashEqual(digest, ""))
}
