package auth

// Source names the login method an Identity came from.
type Source string

// Login methods.
const (
	SourceLocal Source = "local"
	SourceOIDC  Source = "oidc"
	SourceLDAP  Source = "ldap"
)

// Identity is an authenticated but not yet authorized user.
type Identity struct {
	Email  string
	Name   string
	Source Source
}
