package config

import (
	"time"

	"github.com/folio-cms/folio/internal/logger"
)

const (
	// StorageLocal keeps uploads on the local filesystem and serves them under /uploads.
	StorageLocal = "local"
	// StorageS3 keeps uploads in an S3 compatible bucket.
	StorageS3 = "s3"
	// StorageGCS keeps uploads in a Google Cloud Storage bucket.
	StorageGCS = "gcs"

	// SessionBackendDB keeps sessions in the configured database.
	SessionBackendDB = "db"
	// SessionBackendRedis keeps sessions in redis.
	SessionBackendRedis = "redis"
	// SessionBackendMemory keeps sessions in process memory, lost on restart.
	SessionBackendMemory = "memory"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	Backend    string // db, redis or memory
	Redis      Redis
}

// Redis connection settings for the redis session backend.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RateLimit settings for the login form: at most Max attempts per client ip within Expiration.
type RateLimit struct {
	Enabled    bool
	Max        int
	Expiration time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Storage   Storage
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool      // enable static file browsing (for development purposes only)
	DisableRecover bool      // disable recover middleware
	Port           int       // listening port for the webserver
	ShutDownTime   int       // wait time for shutdown
	URL            string    // base url for the webserver
	BodyLimit      int       // max request body size in bytes, 0 = fiber default
	Session        Session   // session settings
	LoginRateLimit RateLimit // throttling of login attempts per client ip
}

// Storage configures the object store used for uploads.
type Storage struct {
	Backend string   // local, s3 or gcs
	Buckets []string // logical bucket names accepted by the upload endpoint
	Local   LocalStorage
	S3      S3Storage
	GCS     GCSStorage
}

// LocalStorage keeps uploads below Root.
type LocalStorage struct {
	Root string
}

// S3Storage configures the S3 upload backend.
type S3Storage struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO and friends
	Prefix    string
	PublicURL string // optional base url objects are reachable at
}

// GCSStorage configures the Google Cloud Storage upload backend.
type GCSStorage struct {
	Bucket    string
	Prefix    string
	PublicURL string
}

// Auth holds the login methods of the admin area.
type Auth struct {
	LocalDB LocalDBAuth
	OIDC    OIDCAuth
	LDAP    LDAPAuth
}

// LocalDBAuth enables email and password login against the admin allow-list.
type LocalDBAuth struct {
	Enabled           bool
	BootstrapEmail    string // added to an empty allow-list on start
	BootstrapPassword string
	TOTPIssuer        string
}

// OIDCAuth configures OpenID Connect login.
type OIDCAuth struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// LDAPAuth configures LDAP bind login.
type LDAPAuth struct {
	Enabled      bool
	Host         string
	Port         int
	UseSSL       bool
	UseTLS       bool
	SkipVerify   bool
	BindDN       string
	BindPassword string
	BaseDN       string
	UserFilter   string
	EmailAttr    string
	Timeout      int
}
