// Package sitesettings serves the admin form for the well known site settings.
// Each tab is saved with one bulk upsert.
package sitesettings

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/controller/siteinfo"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = handler.AdminPath + "/settings"

	// TemplateName is the settings template.
	TemplateName = "admin/settings"

	// TabField names the tab in the query string and the form.
	TabField = "tab"
)

// Tabs lists the tabs in display order.
var Tabs = []string{siteinfo.TabGeneral, siteinfo.TabContact, siteinfo.TabSocial}

// Service is the settings page handler service.
type Service struct {
	handler.Service
	db        *gorm.DB
	validator formValidator
}

// Handler is the settings page handler.
var Handler = Service{}

// Init initializes the settings page handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = deps.DB
	s.validator = newFormValidator()

	gate := deps.Gate.Page()

	app.Get(Path, gate, s.Get)
	app.Post(Path, gate, s.Post)
}

func tabName(name string) string {
	for _, t := range Tabs {
		if t == name {
			return t
		}
	}

	return siteinfo.TabGeneral
}

func (s *Service) render(c fiber.Ctx, status int, tab string, settings *siteinfo.Settings, errs []string) error {
	nav := navigation.Admin(handler.AdminPath, "Site settings", navigation.SectionSettings, tab).
		AddBreadcrumb("Settings", Path, true)

	return handler.Render(c, status, TemplateName, nav, fiber.Map{
		"Tab":      tab,
		"Tabs":     Tabs,
		"Settings": settings,
		"Errors":   errs,
	})
}

// Get renders the form with the stored values.
func (s *Service) Get(c fiber.Ctx) error {
	settings := new(siteinfo.Settings)
	if err := settings.Load(c.Context(), s.db); err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, tabName(c.Query(TabField)), settings, nil)
}

// Post validates the submitted tab and saves all of its fields at once.
func (s *Service) Post(c fiber.Ctx) error {
	tab := tabName(c.FormValue(TabField))

	settings := new(siteinfo.Settings)
	if err := settings.Load(c.Context(), s.db); err != nil {
		return err
	}

	form := settings.Tab(tab)
	if err := c.Bind().Form(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, tab, settings, []string{"invalid form data"})
	}

	if fieldErrs := s.validator.Validate(form); len(fieldErrs) > 0 {
		msgs := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			msgs[i] = fe.Message()
		}

		log.Debug().Strs("errors", msgs).Str("tab", tab).Msg("site settings rejected")

		return s.render(c, fiber.StatusBadRequest, tab, settings, msgs)
	}

	if err := settings.SaveTab(c.Context(), s.db, tab); err != nil {
		return err
	}

	log.Info().Str("tab", tab).Msg("site settings saved")
	return handler.RedirectWithToast(c, handler.ToastSuccess, "Settings saved", Path+"?"+TabField+"="+tab)
}
