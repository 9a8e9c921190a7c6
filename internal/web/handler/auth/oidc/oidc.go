package oidc

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = handler.RootPath + "auth/oidc/login"

	// CallbackPath is the path for OIDC callback.
	CallbackPath = handler.RootPath + "auth/oidc/callback"

	// StateCookie carries the state token between login and callback.
	StateCookie = "oidc_state"

	stateTTL = 5 * time.Minute
)

// Service is the OIDC handler service.
type Service struct {
	handler.Service
	auth     *auth.Service
	sessions *session.Manager
	secure   bool
}

// Handler is the OIDC handler.
var Handler = Service{}

// Init registers the OIDC routes when OIDC is enabled.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() || deps.Auth == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	if deps.Auth.OIDC() == nil {
		log.Info().Msg("OIDC authentication is disabled by configuration")
		return
	}

	s.auth = deps.Auth
	s.sessions = deps.Sessions
	s.secure = !deps.Cfg.DevMode

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)

	log.Info().Msg("OIDC authentication provider initialized")
}

// Login redirects to the provider with a fresh state token.
func (s *Service) Login(c fiber.Ctx) error {
	state, err := auth.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate state token")
		return apperror.Store(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     CallbackPath,
		MaxAge:   int(stateTTL.Seconds()),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect().To(s.auth.OIDC().AuthURL(state))
}

func (s *Service) fail(c fiber.Ctx, msg string) error {
	return handler.RedirectWithToast(c, handler.ToastError, msg, handler.LoginPath)
}

// Callback verifies state and ID token, checks the allow-list and creates the session.
func (s *Service) Callback(c fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	expected := c.Cookies(StateCookie)

	c.Cookie(&fiber.Cookie{Name: StateCookie, Value: "", Path: CallbackPath, MaxAge: -1, HTTPOnly: true})

	if code == "" || state == "" {
		log.Warn().Msg("missing code or state in OIDC callback")
		return s.fail(c, "Invalid callback parameters")
	}

	if expected == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		log.Warn().Msg("invalid or expired OIDC state token")
		return s.fail(c, "Login expired, please try again")
	}

	id, rawIDToken, err := s.auth.OIDC().HandleCallback(c.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")
		return s.fail(c, "Authentication failed")
	}

	admin, err := s.auth.Authorize(c.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrAuth) {
			return s.fail(c, err.Error())
		}

		return err
	}

	err = s.sessions.Create(c, &session.Data{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Source:  string(auth.SourceOIDC),
		IDToken: rawIDToken,
	})
	if err != nil {
		return apperror.Store(err)
	}

	log.Info().Str("email", admin.Email).Msg("admin logged in via OIDC")

	return c.Redirect().To(handler.AdminPath)
}
