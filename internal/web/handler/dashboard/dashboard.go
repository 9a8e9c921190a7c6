// Package dashboard provides the admin landing page with a row count per collection.
package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"
)

// Card is one tile of the dashboard.
type Card struct {
	Title string
	URL   string
	Count int64
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	catalog *content.Catalog
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.catalog = deps.Catalog

	app.Get(Path, deps.Gate.Page(), s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard, navigation.SectionDashboard).
		AddBreadcrumb("Admin", Path, true)

	stats, err := s.catalog.Stats(c.Context())
	if err != nil {
		return err
	}

	cols := s.catalog.Collections()
	cards := make([]Card, 0, len(cols))
	summary := make([]string, 0, len(cols)+1)

	for _, col := range cols {
		n := stats[col.Slug()]
		cards = append(cards, Card{Title: col.Title(), URL: handler.AdminPath + "/" + col.Slug(), Count: n})
		summary = append(summary, col.Slug()+":"+strconv.FormatInt(n, 10))
	}

	summary = append(summary, content.SettingsStatKey+":"+strconv.FormatInt(stats[content.SettingsStatKey], 10))

	log.Debug().Strs("stats", summary).Msg("dashboard stats loaded")

	return handler.Render(c, fiber.StatusOK, TemplateName, nav, fiber.Map{
		"Cards":    cards,
		"Settings": stats[content.SettingsStatKey],
		"Summary":  summary,
	})
}
