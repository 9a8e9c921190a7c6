// Package api serves the JSON API: collection CRUD, site settings, uploads and dashboard stats.
// Reads are public, every mutation requires an admin session.
package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db/controller/entity"
	"github.com/folio-cms/folio/internal/objectstore"
	"github.com/folio-cms/folio/internal/web/handler"
)

const (
	// SettingsPath is the settings resource.
	SettingsPath = "/settings"
	// UploadPath is the upload resource.
	UploadPath = "/upload"
	// StatsPath serves the dashboard counters.
	StatsPath = "/admin/stats"
)

// ErrUnknownCollection is returned for a collection segment no table is bound to.
var ErrUnknownCollection = apperror.New(apperror.ErrNotFound, "unknown collection")

// ErrInvalidBody is returned when a request body is not valid JSON.
var ErrInvalidBody = apperror.New(apperror.ErrValidation, "invalid JSON body")

// Service is the API handler service.
type Service struct {
	handler.Service
	db      *gorm.DB
	catalog *content.Catalog
	store   objectstore.Store
}

// Handler is the API handler.
var Handler = Service{}

// Init registers the API routes below handler.APIPath. Static routes come first
// so that settings and upload are not taken for collections.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = deps.DB
	s.catalog = deps.Catalog
	s.store = deps.Store

	admin := deps.Gate.API()

	app.Route(handler.APIPath, func(router fiber.Router) {
		router.Get(SettingsPath, s.ListSettings)
		router.Put(SettingsPath, admin, s.BulkUpsertSettings)
		router.Post(SettingsPath, admin, s.CreateSetting)
		router.Get(SettingsPath+"/:key", s.GetSetting)
		router.Put(SettingsPath+"/:key", admin, s.UpdateSetting)
		router.Delete(SettingsPath+"/:key", admin, s.DeleteSetting)

		router.Post(UploadPath, admin, s.Upload)
		router.Delete(UploadPath, admin, s.DeleteUpload)

		router.Get(StatsPath, admin, s.Stats)

		router.Get("/:collection", s.List)
		router.Post("/:collection", admin, s.Create)
		router.Get("/:collection/:id", s.Get)
		router.Put("/:collection/:id", admin, s.Update)
		router.Delete("/:collection/:id", admin, s.Delete)
	})
}

func (s *Service) collection(c fiber.Ctx) (entity.Collection, error) {
	col, ok := s.catalog.Lookup(c.Params("collection"))
	if !ok {
		return nil, ErrUnknownCollection
	}

	return col, nil
}

func success(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
