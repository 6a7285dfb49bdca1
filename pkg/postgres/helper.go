package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const sqlStateInvalidTextRepresentation = "22P02"

// IsInvalidTextRepresentation reports whether err is a PostgreSQL cast failure (SQLSTATE 22P02),
// e.g. a malformed uuid compared against a uuid column.
//
// Works with wrapped errors.
func IsInvalidTextRepresentation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == sqlStateInvalidTextRepresentation
	}

	return false
}
