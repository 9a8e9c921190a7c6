// Package db opens the relational store for the configured engine and migrates its schema.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/logger/adapter/gormlog"
)

const dataDirPerm = 0o750

// ErrConfigNil is returned when Open is called without a config.
var ErrConfigNil = errors.New("db: config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg))
	default:
		return sqlite.Open(dsn.Create(cfg))
	}
}

// Open connects to the configured database and migrates all models.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	maxOpen := 0

	if cfg.DB.GormEngine == config.EngineSQLite {
		if dsn.SQLiteInMemory(&cfg.DB) {
			// every connection to :memory: gets its own empty database
			maxOpen = 1
		} else if err := os.MkdirAll(filepath.Dir(cfg.DB.Name), dataDirPerm); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	return open(Dialector(cfg), cfg.DB.LogLevel, maxOpen)
}

// OpenDialector opens d with the zerolog backed gorm logger and migrates all models.
func OpenDialector(d gorm.Dialector, logLevel string) (*gorm.DB, error) {
	return open(d, logLevel, 0)
}

func open(d gorm.Dialector, logLevel string, maxOpen int) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: gormlog.New(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name(), err)
	}

	if maxOpen > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", d.Name(), err)
		}

		sqlDB.SetMaxOpenConns(maxOpen)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	log.Debug().Str("dialect", d.Name()).Msg("database ready")

	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}
