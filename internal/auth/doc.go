// Package auth authenticates admins and checks them against the allow-list.
//
// Three login methods are supported:
//   - LocalProvider: email and argon2id password from the admin_users table,
//     followed by a TOTP code when the admin has a secret.
//   - OIDCProvider: authorization code flow; the verified ID token email is the identity.
//   - LDAPProvider: search and bind; the directory email attribute is the identity.
//
// Whatever the method, the resulting Identity only grants access after
// Service.Authorize found an active admin with that email.
//
// Example usage:
//
//	svc, err := auth.NewService(ctx, cfg.Auth, db)
//	admin, source, err := svc.Login(ctx, email, password, code)
package auth
