// Package session keeps admin sessions in a fiber session store keyed by a random cookie value.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/extractors"
	"github.com/gofiber/fiber/v3/middleware/session"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const (
	keyAdminID = "admin_id"
	keyEmail   = "email"
	keyName    = "name"
	keySource  = "source"
	keyIDToken = "id_token"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Data represents the session data structure.
type Data struct {
	AdminID uint64
	Email   string
	Name    string
	Source  string
	// IDToken is kept for OIDC logout.
	IDToken string
}

// Valid reports whether d identifies an admin.
func (d *Data) Valid() bool {
	return d != nil && d.AdminID > 0 && d.Email != ""
}

// Manager reads and writes sessions for fiber requests.
type Manager struct {
	store *session.Store
}

// New returns a manager on storage. A nil storage keeps sessions in process memory.
// Cookies are marked Secure unless insecure is set (dev mode).
func New(storage fiber.Storage, expiry time.Duration, insecure bool) *Manager {
	return &Manager{store: session.NewStore(session.Config{
		Storage:        storage,
		IdleTimeout:    expiry,
		Extractor:      extractors.FromCookie(CookieName),
		CookiePath:     "/",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   !insecure,
		CookieHTTPOnly: true,
	})}
}

// Storage returns the underlying storage.
func (m *Manager) Storage() fiber.Storage {
	return m.store.Storage
}

// Create stores d under a fresh id and sets the session cookie.
func (m *Manager) Create(c fiber.Ctx, d *Data) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	defer sess.Release()

	// a login never reuses the id the browser came with
	if err = sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(keyAdminID, d.AdminID)
	sess.Set(keyEmail, d.Email)
	sess.Set(keyName, d.Name)
	sess.Set(keySource, d.Source)

	if d.IDToken != "" {
		sess.Set(keyIDToken, d.IDToken)
	}

	return sess.Save()
}

// Read returns the session of the request or ErrNoSession.
func (m *Manager) Read(c fiber.Ctx) (*Data, error) {
	if c.Cookies(CookieName) == "" {
		return nil, ErrNoSession
	}

	sess, err := m.store.Get(c)
	if err != nil {
		return nil, err
	}
	defer sess.Release()

	if sess.Fresh() {
		return nil, ErrNoSession
	}

	d := &Data{
		AdminID: uintValue(sess.Get(keyAdminID)),
		Email:   stringValue(sess.Get(keyEmail)),
		Name:    stringValue(sess.Get(keyName)),
		Source:  stringValue(sess.Get(keySource)),
		IDToken: stringValue(sess.Get(keyIDToken)),
	}

	if !d.Valid() {
		return nil, ErrNoSession
	}

	return d, nil
}

// Destroy deletes the stored session and clears the cookie.
func (m *Manager) Destroy(c fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	defer sess.Release()

	return sess.Destroy()
}

func stringValue(v any) string {
	s, _ := v.(string)

	return s
}

func uintValue(v any) uint64 {
	n, _ := v.(uint64)

	return n
}
