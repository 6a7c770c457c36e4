package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reporta si err es una violación de constraint UNIQUE
// (SQLSTATE 23505), por ejemplo un nombre de producto repetido en el catálogo.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
