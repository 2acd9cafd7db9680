package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/store"
	"github.com/apollo-kit/userd/models"
)

// authService validates credentials against the user directory and
// issues/verifies tokens through the configured TokenStrategy.
type authService struct {
	userRepository store.UserRepository
	hasher         PasswordHasher
	tokens         TokenStrategy
	sessions       *SessionCache // optional, nil when disabled
	logger         *logger.Logger
}

// NewAuthService returns an AuthService backed by the given user
// repository, password hasher and token strategy. sessions may be nil;
// the session cache is an optional side-channel and verification never
// depends on it.
func NewAuthService(userRepository store.UserRepository, hasher PasswordHasher, tokens TokenStrategy, sessions *SessionCache, log *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		sessions:       sessions,
		logger:         log.GetChildLogger(),
	}
}

// ValidateCredentials checks the supplied password against the stored
// record for username. It distinguishes an unknown user (ErrNoSuchUser)
// from a bad password (ErrWrongPassword) so callers can decide how much
// to reveal; the HTTP layer collapses both into one "login failed"
// response.
func (a *authService) ValidateCredentials(ctx context.Context, username string, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("empty username or password: %w", ErrInvalidDataProvided)
	}

	user, err := a.userRepository.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("user `%s`: %w", username, ErrNoSuchUser)
		}
		log.Error().Err(err).Str("func", "ValidateCredentials").Msg("error getting user from storage")
		return models.User{}, err
	}

	if !a.hasher.Compare(user.PasswordHash, password) {
		return models.User{}, fmt.Errorf("user `%s`: %w", username, ErrWrongPassword)
	}

	return user.Sanitized(), nil
}

// CreateToken issues a signed token for the given user and, when the
// session cache is enabled, records it as the user's live session.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("func", "CreateToken").Msg("error issuing token")
		return models.Token{}, err
	}

	if a.sessions != nil {
		a.sessions.Put(user.Username, token.SignedString)
	}

	return token, nil
}

// ParseToken verifies the raw token string and returns the decoded token.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := a.tokens.Verify(ctx, tokenString)
	if err != nil {
		logger.FromContext(ctx).Info().Err(err).Str("func", "ParseToken").Msg("token rejected")
		return models.Token{}, err
	}

	return token, nil
}

// Logout drops the user's session cache entry, if any. Tokens are
// self-contained, so logout always succeeds — including for users who
// never logged in.
func (a *authService) Logout(ctx context.Context, username string) {
	if a.sessions != nil {
		a.sessions.Drop(username)
	}
	logger.FromContext(ctx).Info().Str("func", "Logout").Str("username", username).Msg("user logged out")
}
