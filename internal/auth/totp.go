package auth

import (
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultTOTPIssuer is shown in authenticator apps when no issuer is configured.
const DefaultTOTPIssuer = "folio"

// GenerateTOTP creates a new TOTP secret for account.
// The returned key's URL can be rendered as a QR code for authenticator apps.
func GenerateTOTP(issuer, account string) (*otp.Key, error) {
	if issuer == "" {
		issuer = DefaultTOTPIssuer
	}

	return totp.Generate(totp.GenerateOpts{ //nolint:wrapcheck
		Issuer:      issuer,
		AccountName: account,
	})
}

// ValidateTOTP checks a six digit code against secret, allowing one period of clock skew.
func ValidateTOTP(code, secret string) bool {
	return totp.Validate(strings.TrimSpace(code), secret)
}
