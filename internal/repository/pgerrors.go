package repository

import (
	"errors"

	apperrors "task-manager-backend/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes for integrity constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// translateDBError maps Postgres constraint violations to IntegrityError so
// callers never match on driver error strings. Other errors pass through
// unchanged.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
		return apperrors.NewIntegrityError(pgErr.ConstraintName, pgErr.Message)
	}
	return err
}
