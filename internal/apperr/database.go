package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInsufficientPriv    = "42501"
	pgInvalidText         = "22P02"
)

// FromDB classifies an error returned by the query layer. what names the record for the
// user-facing message, e.g. "artwork".
func FromDB(err error, what string) error {
	if err == nil {
		return nil
	}
	var known *Error
	if errors.As(err, &known) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Message: what + " not found", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindDuplicate, Message: "A " + what + " with these values already exists", Detail: err.Error(), Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &Error{Kind: KindConstraint, Message: "The " + what + " violates a database constraint", Detail: err.Error(), Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindDuplicate, Message: "A " + what + " with these values already exists", Detail: pgErr.Detail, Err: err}
		case pgForeignKeyViolation, pgCheckViolation:
			return &Error{Kind: KindConstraint, Message: "The " + what + " violates a database constraint", Detail: pgErr.Message, Err: err}
		case pgNotNullViolation:
			return &Error{Kind: KindRequiredField, Message: pgErr.ColumnName + " is required", Field: pgErr.ColumnName, Detail: pgErr.Message, Err: err}
		case pgInvalidText:
			return &Error{Kind: KindInvalidFormat, Message: "A value has the wrong format for this " + what, Detail: pgErr.Message, Err: err}
		case pgInsufficientPriv:
			return &Error{Kind: KindForbidden, Message: "Permission denied", Detail: pgErr.Message, Err: err}
		}
	}

	return &Error{Kind: KindDatabase, Message: "Database operation failed", Detail: err.Error(), Err: err}
}
