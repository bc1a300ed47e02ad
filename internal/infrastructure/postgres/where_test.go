package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

func TestWhereBuilder(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("j.employer_id = $%[1]d", "emp-1")
	w.add("(j.title ILIKE $%[1]d OR j.company ILIKE $%[1]d)", contains("go_lang%"))
	assert.Equal(t, " WHERE j.employer_id = $1 AND (j.title ILIKE $2 OR j.company ILIKE $2)", w.String())

	tail, args := w.page(repository.Page{Limit: 10, Offset: 20})
	assert.Equal(t, " LIMIT $3 OFFSET $4", tail)
	assert.Equal(t, []any{"emp-1", `%go\_lang\%%`, 10, 20}, args)
	assert.Len(t, w.args, 2, "page does not grow the filter arguments")

	tail, args = w.page(repository.Page{})
	assert.Equal(t, "", tail)
	assert.Len(t, args, 2)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "job"))
	assert.ErrorIs(t, translate(pgx.ErrNoRows, "job"), apperr.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows), "job"), apperr.ErrNotFound)

	dup := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_email_lower_key"}
	err := translate(dup, "user")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "email already registered", err.Error())

	err = translate(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "other"}, "job")
	assert.Equal(t, "job already exists", err.Error())

	assert.ErrorIs(t, translate(&pgconn.PgError{Code: codeForeignKeyViolation}, "job"), apperr.ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: codeInvalidText}, "job"), apperr.ErrNotFound)

	boom := errors.New("connection reset")
	assert.Same(t, boom, translate(boom, "job"))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("7f8c2a7e-8a55-4d39-9a0b-2b8f9c1f0e11"))
	assert.False(t, validID("not-a-uuid"))
}
