// Package ratelimit throttles requests per client ip with fiber's fixed window limiter.
package ratelimit

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
)

// ErrTooManyRequests is returned to the error handler when a client is throttled.
var ErrTooManyRequests = fiber.NewError(fiber.StatusTooManyRequests, "too many attempts, try again later")

// New returns middleware allowing cfg.Max requests per client ip within cfg.Expiration.
// Counters live in storage, nil keeps them in process memory. A disabled config lets
// every request pass.
func New(cfg config.RateLimit, storage fiber.Storage) fiber.Handler {
	if !cfg.Enabled || cfg.Max <= 0 {
		return Pass
	}

	return limiter.New(limiter.Config{
		Storage:    storage,
		Max:        cfg.Max,
		Expiration: cfg.Expiration,
		KeyGenerator: func(c fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("rate limit exceeded")

			return ErrTooManyRequests
		},
	})
}

// Pass is the middleware of a disabled limiter.
func Pass(c fiber.Ctx) error {
	return c.Next()
}
