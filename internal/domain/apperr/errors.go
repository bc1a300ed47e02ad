// Package apperr holds the error taxonomy shared by services, storage
// adapters and the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken and ErrExpiredToken both wrap ErrUnauthenticated.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrExpiredToken = fmt.Errorf("%w: token expired", ErrUnauthenticated)

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden        = errors.New("access denied: insufficient permissions")
	ErrEmailNotVerified = errors.New("please verify your email address to access this resource")

	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrSelfDelete               = errors.New("cannot delete your own account")
	ErrAlreadyVerified          = errors.New("email is already verified")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrInvalidAction            = errors.New("invalid action or missing parameters")
	ErrStorageUnavailable       = errors.New("file storage is not configured")
)

// AuthorizationError is returned when a resource is missing or not owned by
// the actor. Both cases look identical to the caller.
type AuthorizationError struct {
	Resource string
}

func (e *AuthorizationError) Error() string {
	return e.Resource + " not found or access denied"
}

// Denied builds an AuthorizationError for the named resource.
func Denied(resource string) error {
	return &AuthorizationError{Resource: resource}
}

// NotFound wraps ErrNotFound with the resource name.
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ConflictError reports a uniqueness violation. It matches ErrConflict.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict builds a ConflictError with a client-facing message.
func Conflict(msg string) error {
	return &ConflictError{Msg: msg}
}

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a single-field ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsAuthorization reports whether err is an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
