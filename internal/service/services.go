package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apollo-kit/userd/internal/config"
	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/store"
	"github.com/apollo-kit/userd/models"
)

// Services bundles every service of the application.
type Services struct {
	UserService
	AuthService
}

// NewServices wires the application services on top of the given
// storages using the supplied configuration: password hasher, token
// strategy and (when enabled) the session cache.
//
// The token strategy is given a validate hook that re-checks the
// subject against the user directory, so tokens for deleted users stop
// working before they expire.
func NewServices(storages *store.Storages, cfg config.App, log *logger.Logger) (*Services, error) {
	hasher := NewPasswordHasher(cfg)

	validate := userExistsValidator(storages.UserRepository)
	tokens := NewJWTStrategy(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, validate)

	var sessions *SessionCache
	if cfg.SessionCache {
		cache, err := NewSessionCache(cfg.TokenDuration)
		if err != nil {
			return nil, fmt.Errorf("error creating session cache: %w", err)
		}
		sessions = cache
	}

	return &Services{
		UserService: NewUserService(storages.UserRepository, hasher, log),
		AuthService: NewAuthService(storages.UserRepository, hasher, tokens, sessions, log),
	}, nil
}

// userExistsValidator returns a ValidateFunc rejecting claims whose
// subject no longer exists in the user directory.
func userExistsValidator(users store.UserRepository) ValidateFunc {
	return func(ctx context.Context, token models.Token) error {
		username := token.Claims.Username
		_, err := users.Get(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("token subject `%s` no longer exists", username)
			}
			return fmt.Errorf("error checking token subject `%s`: %w", username, err)
		}
		return nil
	}
}
