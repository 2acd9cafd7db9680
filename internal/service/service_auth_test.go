package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/store"
	"github.com/apollo-kit/userd/models"
)

// ─────────────────────────────────────────────
// Mock TokenStrategy
// ─────────────────────────────────────────────

type mockTokenStrategy struct {
	issueFn  func(ctx context.Context, user models.User) (models.Token, error)
	verifyFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockTokenStrategy) Issue(ctx context.Context, user models.User) (models.Token, error) {
	return m.issueFn(ctx, user)
}

func (m *mockTokenStrategy) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	return m.verifyFn(ctx, tokenString)
}

// newTestAuthService builds an authService over the given mocks. A nil
// strategy gets a stub that fails the test if reached.
func newTestAuthService(t *testing.T, repo store.UserRepository, tokens TokenStrategy, sessions *SessionCache) AuthService {
	t.Helper()
	if tokens == nil {
		tokens = &mockTokenStrategy{
			issueFn: func(_ context.Context, _ models.User) (models.Token, error) {
				t.Fatal("Issue must not be called")
				return models.Token{}, nil
			},
			verifyFn: func(_ context.Context, _ string) (models.Token, error) {
				t.Fatal("Verify must not be called")
				return models.Token{}, nil
			},
		}
	}
	return NewAuthService(repo, NewHMACHasher("test-hash-key"), tokens, sessions, logger.Nop())
}

// storedUser returns a user record whose password hash matches clearPassword
// under the test HMAC key.
func storedUser(t *testing.T, username, clearPassword string) models.User {
	t.Helper()
	hash, err := NewHMACHasher("test-hash-key").Hash(clearPassword)
	require.NoError(t, err)
	return models.User{
		Username:     username,
		PasswordHash: hash,
		Scope:        []string{"normal"},
	}
}

// ─────────────────────────────────────────────
// ValidateCredentials
// ─────────────────────────────────────────────

func TestAuthService_ValidateCredentials_Success(t *testing.T) {
	repo := &mockUserRepository{
		getFn: func(_ context.Context, username string) (models.User, error) {
			require.Equal(t, "alice", username)
			return storedUser(t, "alice", "hunter2"), nil
		},
	}
	svc := newTestAuthService(t, repo, nil, nil)

	user, err := svc.ValidateCredentials(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"normal"}, user.Scope)
	assert.Empty(t, user.PasswordHash, "validated record is sanitized before it leaves the service")
}

func TestAuthService_ValidateCredentials_NoSuchUser(t *testing.T) {
	repo := &mockUserRepository{
		getFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := newTestAuthService(t, repo, nil, nil)

	_, err := svc.ValidateCredentials(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestAuthService_ValidateCredentials_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{
		getFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser(t, "alice", "hunter2"), nil
		},
	}
	svc := newTestAuthService(t, repo, nil, nil)

	_, err := svc.ValidateCredentials(context.Background(), "alice", "letmein")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.NotErrorIs(t, err, ErrNoSuchUser, "outcomes stay distinguishable for in-process callers")
}

func TestAuthService_ValidateCredentials_EmptyInput(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepository{}, nil, nil)

	_, err := svc.ValidateCredentials(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ValidateCredentials(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_ValidateCredentials_StoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	repo := &mockUserRepository{
		getFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, wantErr
		},
	}
	svc := newTestAuthService(t, repo, nil, nil)

	_, err := svc.ValidateCredentials(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, wantErr)
	assert.NotErrorIs(t, err, ErrNoSuchUser)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_CreateToken(t *testing.T) {
	tokens := &mockTokenStrategy{
		issueFn: func(_ context.Context, user models.User) (models.Token, error) {
			require.Equal(t, "alice", user.Username)
			return models.Token{SignedString: "signed.jwt.token"}, nil
		},
	}
	svc := newTestAuthService(t, &mockUserRepository{}, tokens, nil)

	token, err := svc.CreateToken(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", token.SignedString)
}

func TestAuthService_CreateToken_RecordsSession(t *testing.T) {
	sessions, err := NewSessionCache(time.Minute)
	require.NoError(t, err)

	tokens := &mockTokenStrategy{
		issueFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: "signed.jwt.token"}, nil
		},
	}
	svc := newTestAuthService(t, &mockUserRepository{}, tokens, sessions)

	_, err = svc.CreateToken(context.Background(), models.User{Username: "alice"})
	require.NoError(t, err)

	got, ok := sessions.Get("alice")
	require.True(t, ok, "issued token must be recorded as the live session")
	assert.Equal(t, "signed.jwt.token", got)
}

func TestAuthService_CreateToken_IssueError(t *testing.T) {
	tokens := &mockTokenStrategy{
		issueFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{}, ErrTokenCreationFailed
		},
	}
	svc := newTestAuthService(t, &mockUserRepository{}, tokens, nil)

	_, err := svc.CreateToken(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken(t *testing.T) {
	tokens := &mockTokenStrategy{
		verifyFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "signed.jwt.token", tokenString)
			return models.Token{Claims: models.Claims{Username: "alice", Scope: []string{"admin"}}}, nil
		},
	}
	svc := newTestAuthService(t, &mockUserRepository{}, tokens, nil)

	token, err := svc.ParseToken(context.Background(), "signed.jwt.token")
	require.NoError(t, err)
	assert.Equal(t, "alice", token.Claims.Username)
	assert.Equal(t, []string{"admin"}, token.Claims.Scope)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	tokens := &mockTokenStrategy{
		verifyFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, ErrTokenExpired
		},
	}
	svc := newTestAuthService(t, &mockUserRepository{}, tokens, nil)

	_, err := svc.ParseToken(context.Background(), "stale.jwt.token")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestAuthService_Logout_DropsSession(t *testing.T) {
	sessions, err := NewSessionCache(time.Minute)
	require.NoError(t, err)
	sessions.Put("alice", "signed.jwt.token")

	svc := newTestAuthService(t, &mockUserRepository{}, &mockTokenStrategy{}, sessions)

	svc.Logout(context.Background(), "alice")

	_, ok := sessions.Get("alice")
	assert.False(t, ok)
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	// Logging out without a session, or twice in a row, must not panic
	// or error — with or without a session cache.
	withCache, err := NewSessionCache(time.Minute)
	require.NoError(t, err)

	for _, sessions := range []*SessionCache{nil, withCache} {
		svc := newTestAuthService(t, &mockUserRepository{}, &mockTokenStrategy{}, sessions)
		svc.Logout(context.Background(), "nobody")
		svc.Logout(context.Background(), "nobody")
	}
}
