// Package collection renders the generic admin table of a content collection and the
// delete-with-confirmation flow behind its delete buttons.
package collection

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db/controller/entity"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
)

const (
	// Path is the list page of a collection.
	Path = handler.AdminPath + "/:collection"

	// DeletePath is the confirmation page and the delete form target.
	DeletePath = Path + "/:id/delete"

	// ListTemplate is the template of the table.
	ListTemplate = "admin/list"

	// DeleteTemplate is the template of the confirmation page.
	DeleteTemplate = "admin/delete"

	// ConfirmField is the form field that must be ConfirmValue for a delete to happen.
	ConfirmField = "confirm"

	// ConfirmValue is the expected value of ConfirmField.
	ConfirmValue = "yes"
)

var (
	// ErrUnknownCollection is returned for a path segment no collection is bound to.
	ErrUnknownCollection = apperror.New(apperror.ErrNotFound, "page not found")

	// ErrNotConfirmed is flashed when the delete form arrives without confirmation.
	ErrNotConfirmed = apperror.New(apperror.ErrValidation, "deletion was not confirmed")
)

// Service is the collection page handler service.
type Service struct {
	handler.Service
	catalog *content.Catalog
}

// Handler is the collection page handler.
var Handler = Service{}

// Init initializes the collection page handler. Fixed admin pages must be registered before it.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.catalog = deps.Catalog

	gate := deps.Gate.Page()

	app.Get(Path, gate, s.List)
	app.Get(DeletePath, gate, s.Confirm)
	app.Post(DeletePath, gate, s.Delete)
}

func (s *Service) lookup(c fiber.Ctx) (entity.Collection, error) {
	col, ok := s.catalog.Lookup(c.Params("collection"))
	if !ok {
		return nil, ErrUnknownCollection
	}

	return col, nil
}

func listURL(col entity.Collection) string {
	return handler.AdminPath + "/" + col.Slug()
}

func nav(col entity.Collection) *navigation.Context {
	return navigation.Admin(handler.AdminPath, col.Title(), navigation.SectionContent, col.Slug())
}

// List renders the table of a collection.
func (s *Service) List(c fiber.Ctx) error {
	col, err := s.lookup(c)
	if err != nil {
		return err
	}

	rows, err := col.Rows(c.Context())
	if err != nil {
		return err
	}

	return handler.Render(c, fiber.StatusOK, ListTemplate,
		nav(col).AddBreadcrumb(col.Title(), listURL(col), true),
		fiber.Map{
			"Collection": col.Slug(),
			"Title":      col.Title(),
			"Name":       col.Name(),
			"Rows":       rows,
		})
}

// Confirm asks before deleting a record. Missing records answer 404.
func (s *Service) Confirm(c fiber.Ctx) error {
	col, err := s.lookup(c)
	if err != nil {
		return err
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	if _, err = col.GetAny(c.Context(), id); err != nil {
		return err
	}

	return handler.Render(c, fiber.StatusOK, DeleteTemplate,
		nav(col).
			AddBreadcrumb(col.Title(), listURL(col), false).
			AddBreadcrumb("Delete", c.Path(), true),
		fiber.Map{
			"Collection": col.Slug(),
			"Question":   "Delete this " + col.Name() + "?",
			"Action":     c.Path(),
			"Cancel":     listURL(col),
		})
}

// Delete removes the record when the form carries the confirmation and redirects to the
// list with a success or error notification.
func (s *Service) Delete(c fiber.Ctx) error {
	col, err := s.lookup(c)
	if err != nil {
		return err
	}

	back := listURL(col)

	if c.FormValue(ConfirmField) != ConfirmValue {
		return handler.RedirectWithToast(c, handler.ToastError, ErrNotConfirmed.Error(), back)
	}

	id, err := handler.ParseID(c)
	if err == nil {
		err = col.Delete(c.Context(), id)
	}

	if err != nil {
		log.Warn().Err(err).Str("collection", col.Slug()).Str("id", c.Params("id")).Msg("delete failed")
		return handler.RedirectWithToast(c, handler.ToastError, apperror.Message(err), back)
	}

	log.Info().Str("collection", col.Slug()).Uint64("id", id).Msg("record deleted")
	return handler.RedirectWithToast(c, handler.ToastSuccess, handler.Capitalize(col.Name())+" deleted", back)
}
