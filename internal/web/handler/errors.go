package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
)

// ErrorTemplate renders errors of page requests.
const ErrorTemplate = "error"

// ErrorHandler maps errors to status codes. API requests get {"error": message},
// page requests the error template. Messages of 5xx errors never reach the client.
func ErrorHandler(c fiber.Ctx, err error) error {
	code, msg := apperror.Status(err), apperror.Message(err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}

	ev := log.Warn()
	if code >= fiber.StatusInternalServerError {
		ev = log.Error()
	}

	ev.Err(err).Int("status", code).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

	if IsAPI(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	if rerr := c.Status(code).Render(ErrorTemplate, fiber.Map{"Status": code, "Message": msg}, PublicLayout); rerr != nil {
		log.Error().Err(rerr).Msg("failed to render error page")

		return c.Status(code).SendString(msg)
	}

	return nil
}

// IsAPI reports whether the request targets the JSON API.
func IsAPI(c fiber.Ctx) bool {
	p := c.Path()
	return p == APIPath || strings.HasPrefix(p, APIPath+"/")
}
