package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// conflictMessages maps unique constraint names to client-facing messages.
var conflictMessages = map[string]string{
	"users_email_lower_key":       "email already registered",
	"applications_job_seeker_key": "already applied for this job",
}

// translate maps driver errors onto the apperr taxonomy.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			msg, ok := conflictMessages[pgErr.ConstraintName]
			if !ok {
				msg = resource + " already exists"
			}
			return apperr.Conflict(msg)
		case codeForeignKeyViolation, codeInvalidText:
			return apperr.NotFound(resource)
		}
	}
	return err
}

// validID reports whether id can be compared against a uuid column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
