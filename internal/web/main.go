// Package web builds the fiber application: templates, static files, operational
// endpoints and every page and API handler.
package web

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/template/html/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	fiberlog "github.com/folio-cms/folio/internal/logger/adapter/fiber"
	"github.com/folio-cms/folio/internal/objectstore"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/admin/collection"
	"github.com/folio-cms/folio/internal/web/handler/admin/sitesettings"
	"github.com/folio-cms/folio/internal/web/handler/api"
	oidchandler "github.com/folio-cms/folio/internal/web/handler/auth/oidc"
	"github.com/folio-cms/folio/internal/web/handler/dashboard"
	"github.com/folio-cms/folio/internal/web/handler/home"
	"github.com/folio-cms/folio/internal/web/handler/login"
	"github.com/folio-cms/folio/internal/web/handler/logout"
)

const (
	// CheckAlivePath answers 200 while serving and 503 while shutting down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"

	// StaticPath serves the embedded css and scripts.
	StaticPath = "/static"

	// TemplateDir holds the page templates in dev mode.
	TemplateDir = "./internal/web/templates"
)

// ErrNilDeps is returned by New when a required dependency is missing.
var ErrNilDeps = errors.New("web: config and handler dependencies are required")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until the server stopped.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: !s.cfg.DevMode})
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails checkalive for the configured grace period, so load balancers drain
// this instance, then stops the http server.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	if !s.fastShutDown && s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

func templateEngine(cfg *config.Config) (*html.Engine, error) {
	var engine *html.Engine

	if cfg.DevMode {
		engine = html.New(TemplateDir, ".gohtml")
		engine.Reload(true)

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	} else {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, err
		}

		engine = html.NewFileSystem(http.FS(sub), ".gohtml")
	}

	engine.AddFunc("lower", strings.ToLower)
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})

	return engine, nil
}

// New creates the web service. Handlers register their own routes; fixed admin pages
// are registered before the collection pages so that their paths are not taken for
// collection names.
func New(cfg *config.Config, deps *handler.Deps) (*Service, error) {
	if cfg == nil || deps == nil || !deps.Valid() {
		return nil, ErrNilDeps
	}

	engine, err := templateEngine(cfg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			Views:          engine,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlog.New(fiberlog.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))

	app.Get(CheckAlivePath, func(c fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	staticFS, err := fs.Sub(embeddedStaticFiles, "static")
	if err != nil {
		return nil, err
	}

	app.Get(StaticPath+"*", static.New("", static.Config{FS: staticFS, Browse: cfg.Webserver.BrowseStatic}))

	if local, ok := deps.Store.(*objectstore.Local); ok {
		app.Get(objectstore.LocalURLPrefix+"*", static.New("", static.Config{FS: os.DirFS(local.Root())}))
	}

	for _, h := range []handler.Service{
		&api.Handler,
		&login.Handler,
		&logout.Handler,
		&oidchandler.Handler,
		&home.Handler,
		&dashboard.Handler,
		&sitesettings.Handler,
		&collection.Handler,
	} {
		h.Init(app, deps)
	}

	return service, nil
}
