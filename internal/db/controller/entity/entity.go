// Package entity provides the generic CRUD resource used for every content table.
package entity

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/apperror"
)

// ErrBodyNotObject is returned when a create or update body is not a JSON object.
var ErrBodyNotObject = apperror.New(apperror.ErrValidation, "request body must be a JSON object")

// Fields clients may send but the store owns.
var serverFields = []string{"id", "created_at", "updated_at"} //nolint:gochecknoglobals

// Options configure a Resource.
type Options[T any] struct {
	// Slug is the route segment, e.g. research-areas.
	Slug string
	// Name is the singular display name, e.g. publication.
	Name string
	// Title is the plural heading, e.g. Publications.
	Title string
	// Order is the sort key. Ascending id is always appended as tie breaker.
	Order []clause.OrderByColumn
	// Label renders a row for admin tables.
	Label func(*T) string
	// Detail is an optional second column for admin tables.
	Detail func(*T) string
}

// Resource is list/get/create/update/delete over one gorm model.
type Resource[T any] struct {
	db   *gorm.DB
	opts Options[T]
}

// New creates a Resource for model T.
func New[T any](db *gorm.DB, opts Options[T]) *Resource[T] {
	if opts.Label == nil {
		opts.Label = func(*T) string { return "" }
	}

	return &Resource[T]{db: db, opts: opts}
}

func (r *Resource[T]) notFound() error {
	return apperror.Newf(apperror.ErrNotFound, "%s not found", r.opts.Name)
}

func (r *Resource[T]) order() []clause.OrderByColumn {
	out := make([]clause.OrderByColumn, 0, len(r.opts.Order)+1)
	out = append(out, r.opts.Order...)

	return append(out, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

// List returns all rows ordered by the sort key, then id.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}

	tx := r.db.WithContext(ctx)
	for _, o := range r.order() {
		tx = tx.Order(o)
	}

	if err := tx.Find(&rows).Error; err != nil {
		return nil, apperror.Store(err)
	}

	return rows, nil
}

// Get returns the row with the given id.
func (r *Resource[T]) Get(ctx context.Context, id uint64) (*T, error) {
	var rec T

	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound()
		}

		return nil, apperror.Store(err)
	}

	return &rec, nil
}

// Create decodes body into a new record, validates it and inserts it.
// Client supplied id and timestamps are ignored.
func (r *Resource[T]) Create(ctx context.Context, body []byte) (*T, error) {
	var rec T

	if err := merge(body, &rec); err != nil {
		return nil, err
	}

	if err := r.Insert(ctx, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Insert validates and inserts rec.
func (r *Resource[T]) Insert(ctx context.Context, rec *T) error {
	if err := Validate(rec); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperror.Store(err)
	}

	return nil
}

// Update merges body onto the stored row and saves it. Fields absent from body keep their value.
func (r *Resource[T]) Update(ctx context.Context, id uint64, body []byte) (*T, error) {
	var rec T

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return r.notFound()
			}

			return apperror.Store(err)
		}

		if err := merge(body, &rec); err != nil {
			return err
		}

		if err := Validate(&rec); err != nil {
			return err
		}

		if err := tx.Save(&rec).Error; err != nil {
			return apperror.Store(err)
		}

		return nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &rec, nil
}

// Delete removes the row with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return apperror.Store(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.notFound()
	}

	return nil
}

// Count returns the number of rows.
func (r *Resource[T]) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, apperror.Store(err)
	}

	return n, nil
}

// merge decodes the JSON object body onto rec, skipping server owned fields.
func merge(body []byte, rec any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return ErrBodyNotObject
	}

	for _, f := range serverFields {
		delete(fields, f)
	}

	clean, err := json.Marshal(fields)
	if err != nil {
		return apperror.New(apperror.ErrValidation, err.Error())
	}

	if err = json.Unmarshal(clean, rec); err != nil {
		return apperror.Newf(apperror.ErrValidation, "invalid field value: %v", err)
	}

	return nil
}
