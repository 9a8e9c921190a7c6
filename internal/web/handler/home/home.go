// Package home renders the public portfolio page.
package home

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	authmw "github.com/folio-cms/folio/internal/web/middleware/auth"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the home page template.
	TemplateName = "index"
)

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog *content.Catalog
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = deps.Cfg
	s.catalog = deps.Catalog

	app.Get(Path, deps.Gate.Optional(), s.Get)
}

// Get renders every section of the portfolio from fresh reads.
func (s *Service) Get(c fiber.Ctx) error {
	page, err := s.catalog.LoadHome(c.Context())
	if err != nil {
		return err
	}

	title := page.Setting("site_title")
	if title == "" {
		title = s.cfg.Title
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":        title,
		"Tagline":      page.Setting("tagline"),
		"Page":         page,
		"CurrentAdmin": authmw.Current(c),
	}, handler.PublicLayout)
}
