// Package handlertest wires handlers to throwaway services for tests.
package handlertest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/db/controller/entity"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/objectstore"
	"github.com/folio-cms/folio/internal/web/handler"
	authmw "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// AdminEmail is the admin created by Login.
const AdminEmail = "ada@example.org"

// NoOpViews renders the template name followed by the string, table row and flash values
// of the bound fiber.Map, one key=value per line, so tests can assert on them.
type NoOpViews struct{}

func (NoOpViews) Load() error { return nil }

func (NoOpViews) Render(w io.Writer, name string, data any, _ ...string) error {
	_, _ = io.WriteString(w, name+"\n")

	m, ok := data.(fiber.Map)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			_, _ = fmt.Fprintf(w, "%s=%s\n", k, v)
		case []string:
			for _, s := range v {
				_, _ = fmt.Fprintf(w, "%s=%s\n", k, s)
			}
		case []entity.Row:
			for _, r := range v {
				_, _ = fmt.Fprintf(w, "%s=%d:%s\n", k, r.ID, r.Label)
			}
		case *handler.Toast:
			if v != nil {
				_, _ = fmt.Fprintf(w, "%s=%s:%s\n", k, v.Kind, v.Text)
			}
		}
	}

	return nil
}

// Env is a fiber app with every handler dependency backed by test doubles.
type Env struct {
	App      *fiber.App
	Deps     *handler.Deps
	Sessions *session.Manager
	Uploads  *objectstore.Local
}

// New returns an Env with local login enabled.
func New(t *testing.T) *Env {
	t.Helper()

	db := dbtest.Open(t)

	cfg := &config.Config{
		DevMode: true,
		Title:   "Test Portfolio",
		Webserver: config.Webserver{
			URL:     "http://localhost:8080",
			Port:    8080,
			Session: config.Session{ExpiryTime: time.Hour, Backend: config.SessionBackendMemory},
		},
		Auth: config.Auth{LocalDB: config.LocalDBAuth{Enabled: true, TOTPIssuer: "folio-test"}},
	}

	authService, err := auth.NewService(context.Background(), cfg.Auth, db)
	require.NoError(t, err)

	sessions := session.New(nil, time.Hour, true)

	uploads, err := objectstore.NewLocal(t.TempDir(), objectstore.LocalURLPrefix, objectstore.NewBuckets(nil))
	require.NoError(t, err)

	deps := &handler.Deps{
		Cfg:      cfg,
		DB:       db,
		Catalog:  content.New(db),
		Sessions: sessions,
		Gate:     authmw.New(authmw.Config{Sessions: sessions, Allowed: authService.IsAllowed}),
		Auth:     authService,
		Store:    uploads,
	}

	app := fiber.New(fiber.Config{
		Views:        NoOpViews{},
		ErrorHandler: handler.ErrorHandler,
	})

	return &Env{App: app, Deps: deps, Sessions: sessions, Uploads: uploads}
}

// AddAdmin puts email on the allow-list with an optional password.
func (e *Env) AddAdmin(t *testing.T, email, password string) *models.AdminUser {
	t.Helper()

	var hash string

	if password != "" {
		var err error

		hash, err = auth.HashPassword(password)
		require.NoError(t, err)
	}

	u, err := adminuser.Add(context.Background(), e.Deps.DB, email, "Test Admin", hash)
	require.NoError(t, err)

	return u
}

// Login adds AdminEmail to the allow-list and returns a session cookie for it.
func (e *Env) Login(t *testing.T) *http.Cookie {
	t.Helper()

	u := e.AddAdmin(t, AdminEmail, "")

	issuer := fiber.New()
	issuer.Post("/", func(c fiber.Ctx) error {
		return e.Sessions.Create(c, &session.Data{AdminID: u.ID, Email: u.Email, Name: u.Name, Source: string(auth.SourceLocal)})
	})

	resp, err := issuer.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)

	ck := Cookie(resp, session.CookieName)
	require.NotNil(t, ck)

	return &http.Cookie{Name: session.CookieName, Value: ck.Value}
}

// Do runs req against the app, adding cookies, and returns the response and its body.
func (e *Env) Do(t *testing.T, req *http.Request, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()

	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(ck)
		}
	}

	resp, err := e.App.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, string(body)
}

// Cookie returns the named cookie set by resp, nil when absent.
func Cookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}

	return nil
}
