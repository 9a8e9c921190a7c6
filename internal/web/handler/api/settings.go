package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/models"
)

// ErrValueRequired is returned when a setting body has no value or a null one.
// Deleting the key is the way to clear it.
var ErrValueRequired = apperror.New(apperror.ErrValidation, "value is required")

type settingBody struct {
	Key   string      `json:"key"`
	Value models.JSON `json:"value"`
}

func decodeBody(c fiber.Ctx, out any) error {
	if err := c.Bind().JSON(out); err != nil {
		return ErrInvalidBody
	}

	return nil
}

func decodeSetting(c fiber.Ctx) (*settingBody, error) {
	var body settingBody
	if err := decodeBody(c, &body); err != nil {
		return nil, err
	}

	if len(body.Value) == 0 {
		return nil, ErrValueRequired
	}

	return &body, nil
}

// ListSettings returns all settings as one key → value object.
func (s *Service) ListSettings(c fiber.Ctx) error {
	m, err := setting.Map(c.Context(), s.db)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

// GetSetting returns one setting row.
func (s *Service) GetSetting(c fiber.Ctx) error {
	row, err := setting.Get(c.Context(), s.db, c.Params("key"))
	if err != nil {
		return err
	}

	return c.JSON(row)
}

// CreateSetting inserts a new key and answers 409 when it exists.
func (s *Service) CreateSetting(c fiber.Ctx) error {
	body, err := decodeSetting(c)
	if err != nil {
		return err
	}

	row, err := setting.Create(c.Context(), s.db, body.Key, body.Value)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateSetting replaces the value of an existing key. With ?upsert=true a missing
// key is created in the same statement.
func (s *Service) UpdateSetting(c fiber.Ctx) error {
	body, err := decodeSetting(c)
	if err != nil {
		return err
	}

	var row *models.Setting

	if fiber.Query[bool](c, "upsert") {
		row, err = setting.Upsert(c.Context(), s.db, c.Params("key"), body.Value)
	} else {
		row, err = setting.Update(c.Context(), s.db, c.Params("key"), body.Value)
	}

	if err != nil {
		return err
	}

	return c.JSON(row)
}

// BulkUpsertSettings upserts every key of a JSON object and returns the stored values.
func (s *Service) BulkUpsertSettings(c fiber.Ctx) error {
	var body map[string]models.JSON
	if err := decodeBody(c, &body); err != nil {
		return err
	}

	rows, err := setting.UpsertMany(c.Context(), s.db, body)
	if err != nil {
		return err
	}

	out := make(map[string]models.JSON, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}

	return c.JSON(out)
}

// DeleteSetting removes a key. Missing keys are not an error.
func (s *Service) DeleteSetting(c fiber.Ctx) error {
	if err := setting.Delete(c.Context(), s.db, c.Params("key")); err != nil {
		return err
	}

	return success(c)
}
