package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/db/models"
)

// MinPasswordLength is the shortest password HashPassword accepts.
const MinPasswordLength = 8

// dummyHash is compared against for unknown emails so both paths cost one argon2id run.
var dummyHash = sync.OnceValue(func() string { //nolint:gochecknoglobals
	h, _ := argon2id.CreateHash("folio-dummy-password", argon2id.DefaultParams)

	return h
})

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword compares a plaintext password with an argon2id hash.
func VerifyPassword(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify password")

		return false
	}

	return match
}

// LocalProvider handles email and password login against the allow-list.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{db: db}
}

// Authenticate checks email, password and, when the admin has a secret, the TOTP code.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password, code string) (*models.AdminUser, error) {
	u, err := adminuser.GetByEmail(ctx, p.db, email)

	switch {
	case errors.Is(err, adminuser.ErrAdminNotFound), errors.Is(err, adminuser.ErrEmailInvalid):
		VerifyPassword(password, dummyHash())

		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if !u.HasPassword() || !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}

	if u.HasTOTP() {
		if code == "" {
			return nil, ErrTOTPRequired
		}

		if !ValidateTOTP(code, u.TOTPSecret) {
			return nil, ErrInvalidTOTP
		}
	}

	return u, nil
}
