package login

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/middleware/ratelimit"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the login template.
	TemplateName = "login"
)

// Form is the login form.
type Form struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Code     string `form:"code"`
	Next     string `form:"next"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	auth     *auth.Service
	sessions *session.Manager
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() || deps.Auth == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = deps.Cfg
	s.auth = deps.Auth
	s.sessions = deps.Sessions

	limit := deps.LoginLimiter
	if limit == nil {
		limit = ratelimit.Pass
	}

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, limit, s.Post)
	})
}

func (s *Service) render(c fiber.Ctx, status int, form *Form, extra fiber.Map) error {
	data := fiber.Map{
		"Title":         s.cfg.Title,
		"PasswordLogin": s.auth.PasswordLogin(),
		"OIDCEnabled":   s.auth.OIDC() != nil,
		"Email":         form.Email,
		"Next":          form.Next,
		"Flash":         handler.PopToast(c),
	}

	for k, v := range extra {
		data[k] = v
	}

	return c.Status(status).Render(TemplateName, data, handler.PublicLayout)
}

// Get handles the login page rendering. Signed in admins go straight to the admin area.
func (s *Service) Get(c fiber.Ctx) error {
	next := handler.SafeNext(c.Query("next"), handler.AdminPath)

	if d, err := s.sessions.Read(c); err == nil {
		if ok, _ := s.auth.IsAllowed(c.Context(), d.Email); ok {
			return c.Redirect().To(next)
		}
	}

	return s.render(c, fiber.StatusOK, &Form{Next: next}, nil)
}

// Post handles the login form submission.
func (s *Service) Post(c fiber.Ctx) error {
	form := new(Form)

	if err := c.Bind().Body(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, form, fiber.Map{"Error": ErrInvalidFormData.Error()})
	}

	form.Next = handler.SafeNext(form.Next, handler.AdminPath)

	if !s.auth.PasswordLogin() {
		return s.render(c, fiber.StatusNotFound, form, fiber.Map{"Error": ErrNoAuthMethod.Error()})
	}

	admin, source, err := s.auth.Login(c.Context(), form.Email, form.Password, form.Code)

	switch {
	case errors.Is(err, auth.ErrTOTPRequired):
		return s.render(c, fiber.StatusOK, form, fiber.Map{"NeedCode": "true"})
	case errors.Is(err, auth.ErrInvalidTOTP):
		return s.render(c, fiber.StatusUnauthorized, form, fiber.Map{"NeedCode": "true", "Error": err.Error()})
	case errors.Is(err, apperror.ErrAuth):
		log.Info().Str("email", form.Email).Str("ip", c.IP()).Err(err).Msg("login failed")

		return s.render(c, fiber.StatusUnauthorized, form, fiber.Map{"Error": err.Error()})
	case err != nil:
		log.Error().Err(err).Msg("login failed")

		return s.render(c, fiber.StatusInternalServerError, form, fiber.Map{"Error": ErrInternalServerError.Error()})
	}

	data := &session.Data{AdminID: admin.ID, Email: admin.Email, Name: admin.Name, Source: string(source)}

	if err = s.sessions.Create(c, data); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, fiber.StatusInternalServerError, form, fiber.Map{"Error": ErrInternalServerError.Error()})
	}

	log.Info().Str("email", admin.Email).Str("source", data.Source).Msg("admin logged in")

	return c.Redirect().To(form.Next)
}
