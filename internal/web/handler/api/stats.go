package api

import "github.com/gofiber/fiber/v3"

// Stats returns the row count of every collection and of the settings table.
func (s *Service) Stats(c fiber.Ctx) error {
	stats, err := s.catalog.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
