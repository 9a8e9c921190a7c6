package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/apperror"
)

var (
	// ErrFileRequired is returned for an upload without a file part.
	ErrFileRequired = apperror.New(apperror.ErrValidation, "file is required")
	// ErrUploadDisabled is returned when no object store is configured.
	ErrUploadDisabled = apperror.New(apperror.ErrNotFound, "uploads are not enabled")
)

type deleteUploadBody struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// Upload stores the multipart file part in the requested bucket.
func (s *Service) Upload(c fiber.Ctx) error {
	if s.store == nil {
		return ErrUploadDisabled
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return ErrFileRequired
	}

	f, err := fh.Open()
	if err != nil {
		return apperror.Store(err)
	}
	defer func() { _ = f.Close() }()

	bucket := c.FormValue("bucket")

	obj, err := s.store.Put(c.Context(), bucket, fh.Filename, f, fh.Size, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	log.Info().Str("bucket", bucket).Str("path", obj.Path).Int64("size", fh.Size).Msg("file uploaded")

	return c.Status(fiber.StatusCreated).JSON(obj)
}

// DeleteUpload removes a stored object.
func (s *Service) DeleteUpload(c fiber.Ctx) error {
	if s.store == nil {
		return ErrUploadDisabled
	}

	var body deleteUploadBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}

	if err := s.store.Delete(c.Context(), body.Bucket, body.Path); err != nil {
		return err
	}

	return success(c)
}
