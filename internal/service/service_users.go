package service

import (
	"context"
	"fmt"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/store"
	"github.com/apollo-kit/userd/models"
)

// userService is the concrete implementation of [UserService]. It wraps
// the user repository and owns the record lifecycle; every password that
// reaches the store passes through the configured hasher exactly once,
// inside this type's write path.
type userService struct {
	userRepository store.UserRepository
	hasher         PasswordHasher
	logger         *logger.Logger
}

// NewUserService constructs a UserService over the given repository and
// password hasher.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewUserService(userRepository store.UserRepository, hasher PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		logger:         logger,
	}
}

// Get fetches the record stored under username.
//
// Returns the record with its password hash intact — callers at the
// process boundary must sanitize before responding.
func (u *userService) Get(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.Get(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// Add creates or fully overwrites the record for user.Username.
//
// The clear-text password arrives in user.Password and is hashed here,
// exactly once; the clear text never reaches the repository. A write
// with an existing username replaces the prior record entirely
// (last-writer-wins).
//
// Returns ErrInvalidDataProvided if username or password is empty, or a
// wrapped storage error if the write fails.
func (u *userService) Add(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Password == "" {
		log.Error().Str("username", user.Username).Msg("invalid user data provided")
		return ErrInvalidDataProvided
	}

	hash, err := u.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user.PasswordHash = hash
	user.Password = ""

	if err := u.userRepository.Save(ctx, user); err != nil {
		log.Err(err).Str("username", user.Username).Msg("user save failed")
		return fmt.Errorf("user save failed: %w", err)
	}

	log.Debug().Str("username", user.Username).Strs("scope", user.Scope).Msg("user record written")

	return nil
}

// Remove deletes the record for username.
//
// Existence is confirmed with a read before the delete, so removing a
// user that does not exist is reported as [store.ErrUserNotFound] —
// distinctly from a successful delete — and reports the same way on
// every retry.
func (u *userService) Remove(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	if username == "" {
		return ErrInvalidDataProvided
	}

	if _, err := u.userRepository.Get(ctx, username); err != nil {
		log.Err(err).Str("username", username).Msg("user removal: existence check failed")
		return fmt.Errorf("user removal failed: %w", err)
	}

	if err := u.userRepository.Delete(ctx, username); err != nil {
		log.Err(err).Str("username", username).Msg("user removal failed")
		return fmt.Errorf("user removal failed: %w", err)
	}

	log.Debug().Str("username", username).Msg("user record removed")

	return nil
}

// GetAll returns a finite snapshot of every stored record with all
// credential fields stripped, plus the accumulated store errors from the
// scan. The snapshot contains everything that was successfully read even
// when some rows failed.
func (u *userService) GetAll(ctx context.Context) ([]models.User, []error) {
	users, errs := u.userRepository.GetAll(ctx)

	sanitized := make([]models.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, errs
}

// ChangePassword re-hashes newPassword and overwrites the stored record
// for username, leaving every other field untouched.
func (u *userService) ChangePassword(ctx context.Context, username, newPassword string) error {
	log := logger.FromContext(ctx)

	if username == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := u.userRepository.Get(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password change: user lookup failed")
		return fmt.Errorf("password change failed: %w", err)
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password change: hashing failed")
		return fmt.Errorf("password change failed: %w", err)
	}

	user.PasswordHash = hash
	user.Password = ""

	if err := u.userRepository.Save(ctx, user); err != nil {
		log.Err(err).Str("username", username).Msg("password change: save failed")
		return fmt.Errorf("password change failed: %w", err)
	}

	return nil
}
