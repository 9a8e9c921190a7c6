// Package daemon wires configuration, logging, the database, session storage, the object
// store and the web service together and runs them until a shutdown signal arrives.
package daemon

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/objectstore"
	"github.com/folio-cms/folio/internal/web"
	"github.com/folio-cms/folio/internal/web/handler"
	authmw "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/middleware/ratelimit"
	"github.com/folio-cms/folio/internal/web/session"
)

// ErrConfigNil is returned by New without a config.
var ErrConfigNil = errors.New("daemon: config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
	closers    []io.Closer
}

// New opens every resource the web service needs. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config) (d *Daemon, err error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	d = &Daemon{cfg: cfg}

	defer func() {
		if err != nil {
			d.Close()
			d = nil
		}
	}()

	if d.db, err = db.Open(cfg); err != nil {
		return d, err
	}

	if err = seed(ctx, cfg, d.db); err != nil {
		return d, err
	}

	storage, closer, err := newSessionStorage(context.WithoutCancel(ctx), cfg, d.db)
	if err != nil {
		return d, err
	}

	d.closers = append(d.closers, closer)

	store, err := objectstore.New(ctx, cfg.Storage)
	if err != nil {
		return d, err
	}

	if c, ok := store.(io.Closer); ok {
		d.closers = append(d.closers, c)
	}

	authService, err := auth.NewService(ctx, cfg.Auth, d.db)
	if err != nil {
		return d, err
	}

	sessions := session.New(storage, cfg.Webserver.Session.ExpiryTime, cfg.DevMode)
	if storage == nil {
		d.closers = append(d.closers, sessions.Storage())
	}

	deps := &handler.Deps{
		Cfg:          cfg,
		DB:           d.db,
		Catalog:      content.New(d.db),
		Sessions:     sessions,
		Gate:         authmw.New(authmw.Config{Sessions: sessions, Allowed: authService.IsAllowed}),
		Auth:         authService,
		Store:        store,
		LoginLimiter: ratelimit.New(cfg.Webserver.LoginRateLimit, storage),
	}

	if d.webService, err = web.New(cfg, deps); err != nil {
		return d, err
	}

	return d, nil
}

// Start serves http until SIGINT or SIGTERM, then releases all resources.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))

	d.Close()

	return err
}

// Close releases the resources opened by New.
func (d *Daemon) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}

	d.closers = nil

	if d.db == nil {
		return
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	d.db = nil
}
