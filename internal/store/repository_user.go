package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// The same code serves both the SQLite and the PostgreSQL backend; the
// dialect differences live entirely in the DB's query builder.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the record stored under username.
//
// Error handling:
//   - sql.ErrNoRows → [ErrUserNotFound].
//   - Corrupted scope column → [ErrDecodingRecord].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) Get(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := getUserQuery(r.db.builder, username).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Get").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	user, err := scanUser(row.Scan)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case errors.Is(err, ErrDecodingRecord):
		log.Err(err).Str("username", username).Msg("corrupted user record")
		return models.User{}, err
	case postgresError(err) == pgerrcode.UndefinedTable:
		log.Err(err).Msg("users table is missing, migrations were not applied")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case err != nil:
		log.Err(err).Str("username", username).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// Save upserts the record under its username. An existing record with the
// same key is fully overwritten (last-writer-wins, no merge).
func (r *userRepository) Save(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	scope, err := encodeScope(user.Scope)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error encoding scope")
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	query, args, err := saveUserQuery(r.db.builder, user.Username, user.PasswordHash, user.Email, scope).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Save").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("username", user.Username).Str("pg_code", postgresError(err)).Msg("user save failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes the record stored under username.
// Returns [ErrUserNotFound] when no row was deleted.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteUserQuery(r.db.builder, username).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetAll scans every stored record into a snapshot.
//
// The scan does not abort on row-level failures: rows that cannot be
// scanned or decoded are skipped and the errors are accumulated in the
// returned slice, so callers receive everything that could be read plus
// the list of what could not.
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, []error) {
	log := logger.FromContext(ctx)

	query, args, err := getAllUsersQuery(r.db.builder).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAll").Msg("error building query")
		return nil, []error{fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("pg_code", postgresError(err)).Msg("user scan failed")
		return nil, []error{fmt.Errorf("%w: %w", ErrExecutingQuery, err)}
	}
	defer rows.Close()

	var users []models.User
	var errs []error

	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			log.Err(err).Msg("skipping unreadable user row")
			errs = append(errs, fmt.Errorf("%w: %w", ErrScanningRows, err))
			continue
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrScanningRows, err))
	}

	return users, errs
}

// scanUser scans one users-table row through the given scan function and
// decodes the serialized scope column.
func scanUser(scan func(dest ...any) error) (models.User, error) {
	var user models.User
	var scope string

	if err := scan(&user.Username, &user.PasswordHash, &user.Email, &scope, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	decoded, err := decodeScope(scope)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	user.Scope = decoded

	return user, nil
}

func encodeScope(scope []string) (string, error) {
	if scope == nil {
		scope = []string{}
	}

	data, err := json.Marshal(scope)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func decodeScope(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	var scope []string
	if err := json.Unmarshal([]byte(raw), &scope); err != nil {
		return nil, err
	}

	return scope, nil
}
