package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/handlertest"
	"github.com/folio-cms/folio/internal/web/handler/logout"
	"github.com/folio-cms/folio/internal/web/middleware/ratelimit"
	"github.com/folio-cms/folio/internal/web/session"
)

const password = "correct horse battery"

func setup(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)
	env.AddAdmin(t, handlertest.AdminEmail, password)

	var s Service
	s.Init(env.App, env.Deps)

	var l logout.Service
	l.Init(env.App, env.Deps)

	return env
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestGetRendersForm(t *testing.T) {
	env := setup(t)

	resp, body := env.Do(t, httptest.NewRequest(http.MethodGet, Path+"?next=/admin/awards", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, TemplateName)
	assert.Contains(t, body, "Next=/admin/awards")
}

func TestLoginSuccess(t *testing.T) {
	env := setup(t)

	resp, body := env.Do(t, postForm(url.Values{
		"email":    {"ADA@example.org "},
		"password": {password},
		"next":     {"/admin/publications"},
	}))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, body)
	assert.Equal(t, "/admin/publications", resp.Header.Get("Location"))

	ck := handlertest.Cookie(resp, session.CookieName)
	require.NotNil(t, ck)

	raw, err := env.Sessions.Storage().Get(ck.Value)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// already signed in
	resp, _ = env.Do(t, httptest.NewRequest(http.MethodGet, Path, nil), ck)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get("Location"))

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodPost, logout.Path, nil), ck)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, handler.LoginPath, resp.Header.Get("Location"))

	raw, err = env.Sessions.Storage().Get(ck.Value)
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, body = env.Do(t, httptest.NewRequest(http.MethodGet, Path, nil), handlertest.Cookie(resp, fiber.FlashCookieName))
	assert.Contains(t, body, "Flash=info:You have been signed out")
}

func TestLoginRejectsOpenRedirect(t *testing.T) {
	env := setup(t)

	resp, _ := env.Do(t, postForm(url.Values{
		"email":    {handlertest.AdminEmail},
		"password": {password},
		"next":     {"//evil.example"},
	}))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get("Location"))
}

func TestLoginFailures(t *testing.T) {
	env := setup(t)
	env.AddAdmin(t, "oidc-only@example.org", "")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", handlertest.AdminEmail, "nope nope"},
		{"unknown email", "bob@example.org", password},
		{"admin without password", "oidc-only@example.org", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.Do(t, postForm(url.Values{"email": {tt.email}, "password": {tt.pass}}))
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, body, "Error="+auth.ErrInvalidCredentials.Error())
			assert.Nil(t, handlertest.Cookie(resp, session.CookieName))
		})
	}
}

func TestLoginWithTOTP(t *testing.T) {
	env := setup(t)

	key, err := auth.GenerateTOTP("folio-test", handlertest.AdminEmail)
	require.NoError(t, err)
	require.NoError(t, adminuser.SetTOTPSecret(context.Background(), env.Deps.DB, handlertest.AdminEmail, key.Secret()))

	resp, body := env.Do(t, postForm(url.Values{"email": {handlertest.AdminEmail}, "password": {password}}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "NeedCode=true")
	assert.Nil(t, handlertest.Cookie(resp, session.CookieName))

	resp, body = env.Do(t, postForm(url.Values{
		"email": {handlertest.AdminEmail}, "password": {password}, "code": {"000000"},
	}))
	if resp.StatusCode != http.StatusSeeOther { // 000000 may be the current code, one in a million
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Error="+auth.ErrInvalidTOTP.Error())
	}

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	resp, _ = env.Do(t, postForm(url.Values{
		"email": {handlertest.AdminEmail}, "password": {password}, "code": {code},
	}))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestLoginRateLimited(t *testing.T) {
	env := handlertest.New(t)

	env.Deps.LoginLimiter = ratelimit.New(config.RateLimit{Enabled: true, Max: 2, Expiration: time.Hour}, nil)

	var s Service
	s.Init(env.App, env.Deps)

	for range 2 {
		resp, _ := env.Do(t, postForm(url.Values{"email": {"x@example.org"}, "password": {"wrongwrong"}}))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ := env.Do(t, postForm(url.Values{"email": {"x@example.org"}, "password": {"wrongwrong"}}))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
