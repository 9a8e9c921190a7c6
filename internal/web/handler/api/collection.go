package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/web/handler"
)

// List returns every record of a collection in its sort order.
func (s *Service) List(c fiber.Ctx) error {
	col, err := s.collection(c)
	if err != nil {
		return err
	}

	list, err := col.ListAny(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(list)
}

// Get returns one record.
func (s *Service) Get(c fiber.Ctx) error {
	col, err := s.collection(c)
	if err != nil {
		return err
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	rec, err := col.GetAny(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(rec)
}

// Create validates and inserts the body. Client ids are ignored.
func (s *Service) Create(c fiber.Ctx) error {
	col, err := s.collection(c)
	if err != nil {
		return err
	}

	rec, err := col.CreateAny(c.Context(), c.Body())
	if err != nil {
		return err
	}

	log.Info().Str("collection", col.Slug()).Msg("record created")

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Update merges the body onto the stored record.
func (s *Service) Update(c fiber.Ctx) error {
	col, err := s.collection(c)
	if err != nil {
		return err
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	rec, err := col.UpdateAny(c.Context(), id, c.Body())
	if err != nil {
		return err
	}

	return c.JSON(rec)
}

// Delete removes a record.
func (s *Service) Delete(c fiber.Ctx) error {
	col, err := s.collection(c)
	if err != nil {
		return err
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	if err = col.Delete(c.Context(), id); err != nil {
		return err
	}

	log.Info().Str("collection", col.Slug()).Uint64("id", id).Msg("record deleted")

	return success(c)
}
