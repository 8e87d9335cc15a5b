// Package apperr holds the closed error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. The set is closed; handlers switch on it.
type Kind string

const (
	KindRequiredField Kind = "REQUIRED_FIELD"
	KindValidation    Kind = "VALIDATION_ERROR"
	KindInvalidFormat Kind = "INVALID_FORMAT"
	KindDuplicate     Kind = "DUPLICATE_ENTRY"
	KindNotFound      Kind = "NOT_FOUND"
	KindConstraint    Kind = "CONSTRAINT_VIOLATION"
	KindDatabase      Kind = "DATABASE_ERROR"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindForbidden     Kind = "FORBIDDEN"
	KindCreateFailed  Kind = "CREATE_FAILED"
	KindUpdateFailed  Kind = "UPDATE_FAILED"
	KindDeleteFailed  Kind = "DELETE_FAILED"
	KindUnknown       Kind = "UNKNOWN_ERROR"
)

// Error is the public-facing error. Message is shown to the operator, Detail carries the
// technical text of whatever caused it.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is matching by kind only.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrDuplicate    = &Error{Kind: KindDuplicate}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Required reports a missing mandatory field.
func Required(field string) *Error {
	return &Error{Kind: KindRequiredField, Message: field + " is required", Field: field}
}

// InvalidFormat reports a field whose value does not have the expected shape.
func InvalidFormat(field, message string) *Error {
	return &Error{Kind: KindInvalidFormat, Message: message, Field: field}
}

// NotFound reports a missing record or virtual grouping.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// Wrap applies the propagation policy: known errors pass through untouched, anything else
// becomes an operation-specific failure that keeps the original text as detail.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	var known *Error
	if errors.As(err, &known) {
		return err
	}
	return &Error{Kind: kind, Message: message, Detail: err.Error(), Err: err}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a kind onto the status code returned by the API.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindRequiredField, KindValidation, KindInvalidFormat:
		return http.StatusBadRequest
	case KindDuplicate, KindConstraint:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
