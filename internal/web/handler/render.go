package handler

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v3"

	"github.com/folio-cms/folio/internal/apperror"
	authmw "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/navigation"
)

// ErrInvalidID is returned for a non numeric or zero id path parameter.
var ErrInvalidID = apperror.New(apperror.ErrValidation, "invalid id")

// Render renders an admin page with the navigation, the pending flash and the current admin.
func Render(c fiber.Ctx, status int, tmpl string, nav *navigation.Context, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Navigation"] = nav
	data["Flash"] = PopToast(c)
	data["CurrentAdmin"] = authmw.Current(c)

	return c.Status(status).Render(tmpl, data, BaseLayout)
}

// ParseID reads the id path parameter.
func ParseID(c fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// SafeNext returns next when it is a local path, fallback otherwise.
func SafeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}

	return next
}

// Capitalize upper cases the first letter, for messages built from entity names.
func Capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}

	return s
}
