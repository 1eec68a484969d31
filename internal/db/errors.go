package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"studio-admin/internal/domain/apperr"
)

const (
	uniqueViolation           = "23505"
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// IsInvalidText reports a malformed literal, usually a non-uuid id.
func IsInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// StoreError maps a gorm/pgx error onto the domain error kinds. notFound and
// duplicate may be nil when the statement cannot produce them. Errors that
// already carry a domain kind pass through unchanged.
func StoreError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if notFound != nil && (errors.Is(err, gorm.ErrRecordNotFound) || IsInvalidText(err)) {
		return notFound
	}
	if duplicate != nil && IsUniqueViolation(err) {
		return duplicate
	}
	if IsForeignKeyViolation(err) {
		return apperr.Invalid("", "referenced record does not exist")
	}
	return apperr.Unavailable(err)
}
