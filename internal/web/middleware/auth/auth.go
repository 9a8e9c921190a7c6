package auth

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// LocalsKey is the fiber.Locals key holding the *session.Data of an admitted request.
	LocalsKey = "CurrentAdmin"

	// DefaultLoginPath is where pages redirect unauthenticated requests.
	DefaultLoginPath = "/login"
)

// ErrAuthRequired is returned by API routes without a valid admin session.
var ErrAuthRequired = apperror.New(apperror.ErrAuth, "authentication required")

// AllowFunc reports whether email is on the admin allow-list.
type AllowFunc func(ctx context.Context, email string) (bool, error)

// Config for the gate.
type Config struct {
	Sessions  *session.Manager
	Allowed   AllowFunc
	LoginPath string
}

// Gate checks sessions against the allow-list.
type Gate struct {
	cfg Config
}

// New returns a gate. Sessions and Allowed are required.
func New(cfg Config) *Gate {
	if cfg.Sessions == nil || cfg.Allowed == nil {
		panic("auth gate needs sessions and an allow-list")
	}

	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}

	return &Gate{cfg: cfg}
}

// admit resolves the admin of the request and stores it in Locals.
func (g *Gate) admit(c fiber.Ctx) (*session.Data, error) {
	d, err := g.cfg.Sessions.Read(c)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Error().Err(err).Msg("failed to read session")
		}

		return nil, ErrAuthRequired
	}

	ok, err := g.cfg.Allowed(c.Context(), d.Email)
	if err != nil {
		return nil, err
	}

	if !ok {
		log.Warn().Str("email", d.Email).Msg("session of removed admin rejected")
		_ = g.cfg.Sessions.Destroy(c)

		return nil, ErrAuthRequired
	}

	c.Locals(LocalsKey, d)

	return d, nil
}

// API returns middleware answering 401 for requests without an admin session.
func (g *Gate) API() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := g.admit(c); err != nil {
			return err
		}

		return c.Next()
	}
}

// Page returns middleware redirecting requests without an admin session to the login page.
func (g *Gate) Page() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := g.admit(c); err != nil {
			if !errors.Is(err, apperror.ErrAuth) {
				return err
			}

			return c.Redirect().To(g.cfg.LoginPath + "?next=" + url.QueryEscape(c.OriginalURL()))
		}

		return c.Next()
	}
}

// Optional loads the admin into Locals when there is one and never blocks.
func (g *Gate) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if d, err := g.cfg.Sessions.Read(c); err == nil {
			c.Locals(LocalsKey, d)
		}

		return c.Next()
	}
}

// Current returns the admin admitted by the gate, nil outside gated routes.
func Current(c fiber.Ctx) *session.Data {
	d, _ := c.Locals(LocalsKey).(*session.Data)
	return d
}
