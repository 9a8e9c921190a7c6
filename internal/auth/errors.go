package auth

import (
	"errors"

	"github.com/folio-cms/folio/internal/apperror"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = apperror.New(apperror.ErrAuth, "invalid email or password")

	// ErrTOTPRequired is returned when the password matched but the admin has a second factor and no code was sent.
	ErrTOTPRequired = apperror.New(apperror.ErrAuth, "verification code required")

	// ErrInvalidTOTP is returned for a wrong or expired verification code.
	ErrInvalidTOTP = apperror.New(apperror.ErrAuth, "invalid verification code")

	// ErrNotAdmin is returned when an authenticated identity is not on the allow-list.
	ErrNotAdmin = apperror.New(apperror.ErrAuth, "not an admin")

	// ErrAccountDisabled is returned for deactivated admins.
	ErrAccountDisabled = apperror.New(apperror.ErrAuth, "admin account is disabled")

	// ErrPasswordTooShort is returned when hashing a password shorter than MinPasswordLength.
	ErrPasswordTooShort = apperror.New(apperror.ErrValidation, "password must be at least 8 characters")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrNoEmailClaim is returned when the ID token carries no email.
	ErrNoEmailClaim = errors.New("id token has no email claim")

	// ErrUserNotFound is returned when the directory has no entry for the login name.
	ErrUserNotFound = errors.New("user not found")

	// ErrMultipleUsersFound is returned when a query expected one user but found multiple.
	// This typically indicates a misconfigured LDAP filter or duplicate entries.
	ErrMultipleUsersFound = errors.New("multiple users found")
)
