package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/platewise/api/internal/apperr"
)

// PostgreSQL error codes the order engine branches on.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// Classify wraps a storage error with the matching apperr kind.
//
// Integrity (23) and data (22) errors are constraint violations: the same
// statement would fail again. Connection, serialization, resource and
// operator errors are storage unavailable, as is anything that never reached
// the server. Other server errors are wrapped without a kind and surface as
// internal. pgx.ErrNoRows is returned untouched so callers can map it to
// their own not-found message.
func Classify(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrStorageUnavailable, err)
	}
	switch sqlStateClass(pgErr.Code) {
	case classIntegrity, classDataException:
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrConstraintViolation, err)
	case classConnection, classTxRollback, classResources, classOperator, classSystem:
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// SQLSTATE classes Classify distinguishes.
const (
	classConnection    = "08"
	classDataException = "22"
	classIntegrity     = "23"
	classTxRollback    = "40"
	classResources     = "53"
	classOperator      = "57"
	classSystem        = "58"
)

func sqlStateClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
