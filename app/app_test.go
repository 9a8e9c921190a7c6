package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/auth"
)

func configDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	toml := `Title = "CLI Test"

[DB]
GormEngine = "sqlite"
Name = "` + filepath.ToSlash(filepath.Join(dir, "folio.db")) + `"

[Log]
LogLevel = "error"
AppName = "folio"
ServiceName = "folio-cli-test"

[Webserver]
Port = 8080
URL = "http://localhost:8080"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(toml), 0o600))

	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := Execute()

	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "correct horse battery\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("correct horse battery", strings.TrimSpace(out)))

	_, err = run(t, "", "hash-password")
	require.ErrorIs(t, err, ErrNoPassword)
}

func TestAdminCommands(t *testing.T) {
	dir := configDir(t)

	out, err := run(t, "", "admin", "add", "-c", dir, "--email", "Ada@Example.org", "--name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "added ada@example.org")

	out, err = run(t, "", "admin", "list", "-c", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.org")
	assert.Contains(t, out, "Ada")

	out, err = run(t, "", "admin", "totp", "-c", dir, "--email", "ada@example.org")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "otpauth://totp/"))

	_, err = run(t, "", "admin", "remove", "-c", dir, "--email", "ada@example.org")
	require.NoError(t, err)

	_, err = run(t, "", "admin", "remove", "-c", dir, "--email", "ada@example.org")
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	dir := configDir(t)
	file := filepath.Join(dir, "content.yaml")

	require.NoError(t, os.WriteFile(file, []byte(`
settings:
  site_title: Dr. Ada Lovelace
awards:
  - title: Medal
    year: 1840
`), 0o600))

	out, err := run(t, "", "import", "-c", dir, "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "awards")
	assert.Contains(t, out, "settings")

	out, err = run(t, "", "config", "-c", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "CLI Test"`)
}
