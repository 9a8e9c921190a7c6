package daemon

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v3"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	sessionTable      = "sessions"
	sessionGCInterval = time.Minute
)

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// newSessionStorage picks the session storage for the configured backend. The db backend
// uses the gofiber storage driver of the database engine; sqlite sessions go through gorm.
// The memory backend returns a nil storage, which the session manager replaces with
// fiber's in-memory storage. The returned closer releases the storage and stops background collection.
func newSessionStorage(ctx context.Context, cfg *config.Config, db *gorm.DB) (fiber.Storage, io.Closer, error) {
	switch cfg.Webserver.Session.Backend {
	case config.SessionBackendMemory:
		log.Warn().Msg("sessions are kept in memory and lost on restart")

		return nil, closeFunc(func() error { return nil }), nil
	case config.SessionBackendRedis:
		s := session.NewRedisStorage(cfg.Webserver.Session.Redis)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()

			return nil, nil, err
		}

		return s, s, nil
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		s := sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})

		return s, s, nil
	case config.EnginePostgres:
		s := sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})

		return s, s, nil
	default:
		s := session.NewGormStorage(db)

		gcCtx, cancel := context.WithCancel(ctx)
		go s.RunGC(gcCtx, sessionGCInterval)

		return s, closeFunc(func() error { cancel(); return nil }), nil
	}
}
