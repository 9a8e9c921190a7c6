package handler

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/objectstore"
	authmw "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// Deps are the shared services every handler is initialised with.
type Deps struct {
	Cfg          *config.Config
	DB           *gorm.DB
	Catalog      *content.Catalog
	Sessions     *session.Manager
	Gate         *authmw.Gate
	Auth         *auth.Service
	Store        objectstore.Store
	LoginLimiter fiber.Handler // nil disables throttling
}

// Valid reports whether the services every handler needs are set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Catalog != nil && d.Sessions != nil && d.Gate != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps)
}
