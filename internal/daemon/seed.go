package daemon

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/models"
)

// SiteTitleKey is the setting seeded from the configured title.
const SiteTitleKey = "site_title"

// seed fills an empty install: the site title setting and, when configured, the first admin.
// Existing data is never touched.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if _, err := setting.Create(ctx, db, SiteTitleKey, models.MustJSON(cfg.Title)); err != nil &&
		!errors.Is(err, apperror.ErrConflict) {
		return err
	}

	email := cfg.Auth.LocalDB.BootstrapEmail
	if email == "" {
		return nil
	}

	n, err := adminuser.Count(ctx, db)
	if err != nil || n > 0 {
		return err
	}

	var hash string

	if pw := cfg.Auth.LocalDB.BootstrapPassword; pw != "" {
		if hash, err = auth.HashPassword(pw); err != nil {
			return err
		}
	}

	if _, err = adminuser.Add(ctx, db, email, "Administrator", hash); err != nil {
		return err
	}

	log.Warn().Str("email", adminuser.NormalizeEmail(email)).Msg("bootstrap admin created, change its password")

	return nil
}
