// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/folio-cms/folio/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(&cfg.DB)
	case config.EnginePostgres:
		return Postgres(&cfg.DB)
	default:
		return SQLite(&cfg.DB)
	}
}

// MySQL builds a go-sql-driver DSN: user:pass@tcp(host:port)/name?extras.
func MySQL(db *config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		db.User,
		db.Password,
		net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		db.Name,
		db.Extras,
	)
}

// Postgres builds a postgres:// URL. Extras is appended as the query string.
func Postgres(db *config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// SQLiteMemory is the database name of an in-memory sqlite database.
const SQLiteMemory = ":memory:"

// SQLiteInMemory reports whether db names an in-memory sqlite database.
func SQLiteInMemory(db *config.DB) bool {
	return db.Name == "" || db.Name == SQLiteMemory
}

// SQLite uses Name as the database file; an empty name means an in-memory database.
// Each connection to it sees its own database, so callers must keep a single connection.
func SQLite(db *config.DB) string {
	name := db.Name
	if SQLiteInMemory(db) {
		name = SQLiteMemory
	}

	if db.Extras == "" {
		return name
	}

	return name + "?" + db.Extras
}
