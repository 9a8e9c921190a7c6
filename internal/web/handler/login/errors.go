// Package login provides HTTP handlers for the admin login form.
//
// This file defines exported error values used throughout the login flow.
package login

import "github.com/folio-cms/folio/internal/apperror"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed.
	ErrInvalidFormData = apperror.New(apperror.ErrValidation, "invalid form data")

	// ErrNoAuthMethod is returned when neither local nor LDAP login is enabled.
	ErrNoAuthMethod = apperror.New(apperror.ErrNotFound, "password login is disabled")

	// ErrInternalServerError is returned for unexpected failures during the login process.
	ErrInternalServerError = apperror.New(apperror.ErrStore, "internal server error")
)
