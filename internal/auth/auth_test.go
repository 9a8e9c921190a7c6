package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
	"github.com/folio-cms/folio/internal/db/dbtest"
)

const testPassword = "correct horse battery"

func seedAdmin(t *testing.T, db *gorm.DB, email string) {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	_, err = adminuser.Add(context.Background(), db, email, "Admin", hash)
	require.NoError(t, err)
}

func newService(t *testing.T, db *gorm.DB) *auth.Service {
	t.Helper()

	svc, err := auth.NewService(context.Background(), config.Auth{LocalDB: config.LocalDBAuth{Enabled: true}}, db)
	require.NoError(t, err)

	return svc
}

func TestHashPassword(t *testing.T) {
	_, err := auth.HashPassword("short")
	require.ErrorIs(t, err, auth.ErrPasswordTooShort)
	require.ErrorIs(t, err, apperror.ErrValidation)

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(testPassword, hash))
	assert.False(t, auth.VerifyPassword("wrong password", hash))
	assert.False(t, auth.VerifyPassword(testPassword, "not a hash"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	seedAdmin(t, db, "ada@example.com")

	svc := newService(t, db)
	assert.True(t, svc.PasswordLogin())
	assert.Nil(t, svc.OIDC())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "ok", email: "ada@example.com", password: testPassword},
		{name: "email case", email: "ADA@example.com", password: testPassword},
		{name: "wrong password", email: "ada@example.com", password: "nope nope", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "eve@example.com", password: testPassword, wantErr: auth.ErrInvalidCredentials},
		{name: "garbage email", email: "eve", password: testPassword, wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, source, err := svc.Login(ctx, tt.email, tt.password, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, apperror.ErrAuth)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", u.Email)
			assert.Equal(t, auth.SourceLocal, source)
		})
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	seedAdmin(t, db, "ada@example.com")
	require.NoError(t, adminuser.SetActive(ctx, db, "ada@example.com", false))

	_, _, err := newService(t, db).Login(ctx, "ada@example.com", testPassword, "")
	require.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestLoginTOTP(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	seedAdmin(t, db, "ada@example.com")

	key, err := auth.GenerateTOTP("", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, key.URL(), "issuer="+auth.DefaultTOTPIssuer)
	require.NoError(t, adminuser.SetTOTPSecret(ctx, db, "ada@example.com", key.Secret()))

	svc := newService(t, db)

	_, _, err = svc.Login(ctx, "ada@example.com", testPassword, "")
	require.ErrorIs(t, err, auth.ErrTOTPRequired)

	_, _, err = svc.Login(ctx, "ada@example.com", testPassword, "000000")
	if !errors.Is(err, auth.ErrInvalidTOTP) {
		// 000000 can be the current code once in a million runs
		require.NoError(t, err)
	}

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	u, _, err := svc.Login(ctx, "ada@example.com", testPassword, code)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	seedAdmin(t, db, "ada@example.com")

	svc := newService(t, db)

	u, err := svc.Authorize(ctx, &auth.Identity{Email: "Ada@Example.com", Source: auth.SourceOIDC})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = svc.Authorize(ctx, &auth.Identity{Email: "eve@example.com", Source: auth.SourceLDAP})
	require.ErrorIs(t, err, auth.ErrNotAdmin)

	ok, err := svc.IsAllowed(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNoPasswordMethods(t *testing.T) {
	svc, err := auth.NewService(context.Background(), config.Auth{}, dbtest.Open(t))
	require.NoError(t, err)

	assert.False(t, svc.PasswordLogin())

	_, _, err = svc.Login(context.Background(), "ada@example.com", testPassword, "")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLDAPProvider(t *testing.T) {
	_, err := auth.NewLDAPProvider(config.LDAPAuth{})
	require.ErrorIs(t, err, auth.ErrLDAPDisabled)

	p, err := auth.NewLDAPProvider(config.LDAPAuth{Enabled: true, Host: "ldap.example.com", Port: 636, UseSSL: true})
	require.NoError(t, err)

	assert.Equal(t, "ldaps://ldap.example.com:636", p.URL())
	assert.Equal(t, `(mail=a\2a\29@example.com)`, p.UserFilter("a*)@example.com"))

	_, err = p.Authenticate("ada@example.com", "")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestOIDCDisabled(t *testing.T) {
	_, err := auth.NewOIDCProvider(context.Background(), config.OIDCAuth{})
	require.ErrorIs(t, err, auth.ErrOIDCDisabled)

	s1, err := auth.GenerateStateToken()
	require.NoError(t, err)

	s2, err := auth.GenerateStateToken()
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
	assert.Len(t, s1, 43)
}
