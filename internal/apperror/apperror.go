// Package apperror defines the error classes shared by the store, auth and web layers
// and their mapping to HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Package level errors wrap exactly one of these.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrStore      = errors.New("internal error")
)

// Error is a classed error with its own user visible message.
type Error struct {
	class error
	msg   string
}

// New returns an error of the given class with message msg.
func New(class error, msg string) *Error {
	return &Error{class: class, msg: msg}
}

// Newf is New with a format string.
func Newf(class error, format string, args ...any) *Error {
	return New(class, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.class
}

// StoreError wraps a failure of the relational or object store.
// Its cause is logged but never shown to clients.
type StoreError struct {
	Err error
}

// Store wraps err as a StoreError. Nil stays nil.
func Store(err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Err: err}
}

func (e *StoreError) Error() string {
	return "store: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports StoreError as ErrStore.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore //nolint:errorlint
}

// Status maps err to an HTTP status code. Unclassified errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrStore):
		return http.StatusInternalServerError
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client facing message for err.
// Anything that maps to 500 collapses to "internal error".
func Message(err error) string {
	if err == nil {
		return ""
	}

	if Status(err) == http.StatusInternalServerError {
		return ErrStore.Error()
	}

	return err.Error()
}
