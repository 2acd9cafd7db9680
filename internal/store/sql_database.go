package store

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/apollo-kit/userd/internal/config"
	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/migrations"
)

// DB wraps a sql.DB connection together with the dialect-specific query
// builder used by the repositories.
type DB struct {
	*sql.DB

	// builder produces queries with the placeholder format matching the
	// connected backend ($N for postgres, ? for sqlite).
	builder sq.StatementBuilderType

	// dialect is the goose dialect name of the connected backend.
	dialect string

	logger *logger.Logger
}

// Connect opens a connection to the store backend selected by the DSN:
// a "postgres://" (or "postgresql://") prefix selects the pgx driver,
// anything else is treated as a SQLite file path.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// Migrate applies the embedded schema migrations using the dialect the
// connection was opened with.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
