package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apollo-kit/userd/models"
)

const (
	testSignKey = "jwt-test-sign-key"
	testIssuer  = "userd-test"
)

func TestJWTStrategy_IssueVerifyRoundTrip(t *testing.T) {
	strategy := NewJWTStrategy(testSignKey, testIssuer, time.Hour, nil)

	user := models.User{Username: "alice", Scope: []string{"admin", "normal"}}

	issued, err := strategy.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	verified, err := strategy.Verify(context.Background(), issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", verified.Claims.Username)
	assert.Equal(t, []string{"admin", "normal"}, verified.Claims.Scope)
}

func TestJWTStrategy_Verify_Expired(t *testing.T) {
	strategy := NewJWTStrategy(testSignKey, testIssuer, time.Nanosecond, nil)

	issued, err := strategy.Issue(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = strategy.Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTStrategy_Verify_WrongKey(t *testing.T) {
	issued, err := NewJWTStrategy("key-one", testIssuer, time.Hour, nil).
		Issue(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)

	_, err = NewJWTStrategy("key-two", testIssuer, time.Hour, nil).
		Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestJWTStrategy_Verify_WrongIssuer(t *testing.T) {
	issued, err := NewJWTStrategy(testSignKey, "someone-else", time.Hour, nil).
		Issue(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)

	_, err = NewJWTStrategy(testSignKey, testIssuer, time.Hour, nil).
		Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTStrategy_Verify_Garbage(t *testing.T) {
	strategy := NewJWTStrategy(testSignKey, testIssuer, time.Hour, nil)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := strategy.Verify(context.Background(), tokenString)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", tokenString)
	}
}

func TestJWTStrategy_ValidateHook(t *testing.T) {
	hookErr := errors.New("subject is gone")
	calls := 0
	strategy := NewJWTStrategy(testSignKey, testIssuer, time.Hour, func(_ context.Context, token models.Token) error {
		calls++
		if token.Claims.Username == "deleted" {
			return hookErr
		}
		return nil
	})

	issued, err := strategy.Issue(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)
	_, err = strategy.Verify(context.Background(), issued.SignedString)
	require.NoError(t, err)

	issued, err = strategy.Issue(context.Background(), models.User{Username: "deleted"})
	require.NoError(t, err)
	_, err = strategy.Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenRejected)
	assert.ErrorIs(t, err, hookErr)

	assert.Equal(t, 2, calls)
}

func TestJWTStrategy_ValidateHook_NotRunOnBadSignature(t *testing.T) {
	// The hook only sees tokens whose signature already verified.
	issued, err := NewJWTStrategy("key-one", testIssuer, time.Hour, nil).
		Issue(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)

	strategy := NewJWTStrategy("key-two", testIssuer, time.Hour, func(_ context.Context, _ models.Token) error {
		t.Fatal("validate hook must not run for an unverified token")
		return nil
	})

	_, err = strategy.Verify(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestSessionCache(t *testing.T) {
	sessions, err := NewSessionCache(time.Minute)
	require.NoError(t, err)

	_, ok := sessions.Get("alice")
	assert.False(t, ok)

	sessions.Put("alice", "first")
	got, ok := sessions.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "first", got)

	// A new login replaces the previous session.
	sessions.Put("alice", "second")
	got, _ = sessions.Get("alice")
	assert.Equal(t, "second", got)

	sessions.Drop("alice")
	_, ok = sessions.Get("alice")
	assert.False(t, ok)

	// Dropping again is a no-op.
	sessions.Drop("alice")
}
