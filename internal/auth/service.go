package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/db/models"
)

// directory is the part of LDAPProvider the password login needs.
type directory interface {
	Authenticate(username, password string) (*Identity, error)
}

// Service ties the login methods to the admin allow-list.
type Service struct {
	db    *gorm.DB
	cfg   config.Auth
	local *LocalProvider
	oidc  *OIDCProvider
	ldap  directory
}

// NewService creates the auth service with every login method enabled in cfg.
// OIDC discovery runs here, so an unreachable provider fails start up.
func NewService(ctx context.Context, cfg config.Auth, db *gorm.DB) (*Service, error) {
	s := &Service{db: db, cfg: cfg}

	if cfg.LocalDB.Enabled {
		s.local = NewLocalProvider(db)
	}

	if cfg.OIDC.Enabled {
		p, err := NewOIDCProvider(ctx, cfg.OIDC)
		if err != nil {
			return nil, err
		}

		s.oidc = p
	}

	if cfg.LDAP.Enabled {
		p, err := NewLDAPProvider(cfg.LDAP)
		if err != nil {
			return nil, err
		}

		s.ldap = p
	}

	return s, nil
}

// OIDC returns the OIDC provider, nil when disabled.
func (s *Service) OIDC() *OIDCProvider {
	return s.oidc
}

// PasswordLogin reports whether the login form should be offered.
func (s *Service) PasswordLogin() bool {
	return s.local != nil || s.ldap != nil
}

// TOTPIssuer is the issuer shown in authenticator apps.
func (s *Service) TOTPIssuer() string {
	return s.cfg.LocalDB.TOTPIssuer
}

// Login authenticates with the local database first and falls back to LDAP.
// Second factor errors from the local provider are final.
// The returned Source names the method that accepted the credentials.
func (s *Service) Login(ctx context.Context, email, password, code string) (*models.AdminUser, Source, error) {
	if s.local != nil {
		u, err := s.local.Authenticate(ctx, email, password, code)
		if err == nil {
			return u, SourceLocal, nil
		}

		if s.ldap == nil || !errors.Is(err, ErrInvalidCredentials) {
			return nil, "", err
		}
	}

	if s.ldap != nil {
		id, err := s.ldap.Authenticate(email, password)
		if err != nil {
			log.Info().Err(err).Str("login", email).Msg("ldap login failed")

			return nil, "", ErrInvalidCredentials
		}

		u, err := s.Authorize(ctx, id)
		if err != nil {
			return nil, "", err
		}

		return u, id.Source, nil
	}

	return nil, "", ErrInvalidCredentials
}

// Authorize maps an authenticated identity to an active admin.
func (s *Service) Authorize(ctx context.Context, id *Identity) (*models.AdminUser, error) {
	u, err := adminuser.GetByEmail(ctx, s.db, id.Email)

	switch {
	case errors.Is(err, adminuser.ErrAdminNotFound), errors.Is(err, adminuser.ErrEmailInvalid):
		log.Warn().Str("email", id.Email).Str("source", string(id.Source)).Msg("login by non admin rejected")

		return nil, ErrNotAdmin
	case err != nil:
		return nil, err
	case !u.Active:
		return nil, ErrAccountDisabled
	}

	return u, nil
}

// IsAllowed reports whether email belongs to an active admin.
func (s *Service) IsAllowed(ctx context.Context, email string) (bool, error) {
	return adminuser.IsAllowed(ctx, s.db, email)
}
