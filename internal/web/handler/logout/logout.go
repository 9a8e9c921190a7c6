// Package logout ends admin sessions.
package logout

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path is the logout route.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	auth     *auth.Service
	sessions *session.Manager
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = deps.Cfg
	s.auth = deps.Auth
	s.sessions = deps.Sessions

	// logout route (outside auth middleware protection)
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout deletes the session and clears the cookie. OIDC sessions are also
// ended at the provider when it supports RP initiated logout.
func (s *Service) Logout(c fiber.Ctx) error {
	d, _ := s.sessions.Read(c)

	if err := s.sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	if d != nil && d.Source == string(auth.SourceOIDC) && s.auth != nil && s.auth.OIDC() != nil {
		if u := s.auth.OIDC().LogoutURL(d.IDToken, s.cfg.Webserver.URL+handler.LoginPath); u != "" {
			return c.Redirect().To(u)
		}
	}

	return handler.RedirectWithToast(c, handler.ToastInfo, "You have been signed out", handler.LoginPath)
}
