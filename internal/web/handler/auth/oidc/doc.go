// Package oidc provides handlers for OpenID Connect (OIDC) admin login.
//
// The flow includes:
//   - Login initiation with CSRF protection via a state cookie
//   - Authorization callback handling with ID token verification
//   - Allow-list check of the verified email
//   - Session creation and cookie management
//
// Users are never created from OIDC claims. An identity whose email is not an
// active admin is turned away.
//
//	GET /auth/oidc/login    - Initiate OIDC login flow
//	GET /auth/oidc/callback - Handle provider callback
package oidc
