package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrapPassesKnownErrorsThrough(t *testing.T) {
	known := NotFound("collection")

	err := Wrap(fmt.Errorf("outer: %w", known), KindUpdateFailed, "Failed to update collection")

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestWrapTurnsForeignErrorsIntoOperationFailures(t *testing.T) {
	err := Wrap(errors.New("connection reset"), KindUpdateFailed, "Failed to update collection")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindUpdateFailed, appErr.Kind)
	assert.Equal(t, "Failed to update collection", appErr.Message)
	assert.Equal(t, "connection reset", appErr.Detail)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, KindUnknown, "x"))
}

func TestIsMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NotFound("artwork"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestFromDBClassifiesGormErrors(t *testing.T) {
	cases := map[error]Kind{
		gorm.ErrRecordNotFound:          KindNotFound,
		gorm.ErrDuplicatedKey:           KindDuplicate,
		gorm.ErrForeignKeyViolated:      KindConstraint,
		gorm.ErrCheckConstraintViolated: KindConstraint,
		errors.New("boom"):              KindDatabase,
	}
	for in, want := range cases {
		assert.Equal(t, want, KindOf(FromDB(in, "artwork")), in.Error())
	}
}

func TestFromDBClassifiesPostgresCodes(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Detail: "Key (slug)=(a) already exists."}
	assert.Equal(t, KindDuplicate, KindOf(FromDB(unique, "artwork")))

	notNull := &pgconn.PgError{Code: "23502", ColumnName: "title"}
	err := FromDB(notNull, "artwork")
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindRequiredField, appErr.Kind)
	assert.Equal(t, "title", appErr.Field)

	denied := &pgconn.PgError{Code: "42501"}
	assert.Equal(t, KindForbidden, KindOf(FromDB(denied, "artwork")))

	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	assert.Equal(t, KindInvalidFormat, KindOf(FromDB(badUUID, "artwork")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindOf(FromDB(badUUID, "artwork"))))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindRequiredField))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindDuplicate))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindUpdateFailed))
}
