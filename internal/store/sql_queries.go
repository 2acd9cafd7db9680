package store

import (
	sq "github.com/Masterminds/squirrel"
)

const usersTable = "users"

// userColumns is the column order every user query selects and scans.
var userColumns = []string{"username", "password_hash", "email", "scope", "created_at"}

// getUserQuery builds the single-record lookup by username.
func getUserQuery(builder sq.StatementBuilderType, username string) sq.SelectBuilder {
	return builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username})
}

// saveUserQuery builds the last-writer-wins upsert: an insert that fully
// replaces the stored record when the username already exists.
func saveUserQuery(builder sq.StatementBuilderType, username, passwordHash, email, scope string) sq.InsertBuilder {
	return builder.
		Insert(usersTable).
		Columns("username", "password_hash", "email", "scope").
		Values(username, passwordHash, email, scope).
		Suffix(`ON CONFLICT (username) DO UPDATE SET
			password_hash = excluded.password_hash,
			email = excluded.email,
			scope = excluded.scope`)
}

// deleteUserQuery builds the delete by username.
func deleteUserQuery(builder sq.StatementBuilderType, username string) sq.DeleteBuilder {
	return builder.
		Delete(usersTable).
		Where(sq.Eq{"username": username})
}

// getAllUsersQuery builds the full-table snapshot scan in key order.
func getAllUsersQuery(builder sq.StatementBuilderType) sq.SelectBuilder {
	return builder.
		Select(userColumns...).
		From(usersTable).
		OrderBy("username")
}
