// Package setting provides CRUD operations for the site settings key-value store.
//
// A unique index on key backs every write: Create is an insert that does nothing on conflict,
// Upsert an insert that updates on conflict. Neither reads before writing.
package setting

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = apperror.New(apperror.ErrNotFound, "setting not found")
	// ErrSettingKeyEmpty is returned when a key is empty.
	ErrSettingKeyEmpty = apperror.New(apperror.ErrValidation, "setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = apperror.New(apperror.ErrConflict, "setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func keyColumn() []clause.Column {
	return []clause.Column{{Name: "key"}}
}

func check(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	return nil
}

// Get retrieves a setting by its key.
func Get(ctx context.Context, db *gorm.DB, key string) (*models.Setting, error) {
	if err := check(db, key); err != nil {
		return nil, err
	}

	var setting models.Setting

	err := db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, apperror.Store(err)
	}

	return &setting, nil
}

// List retrieves all settings ordered by key.
func List(ctx context.Context, db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	settings := []models.Setting{}

	err := db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&settings).Error
	if err != nil {
		return nil, apperror.Store(err)
	}

	return settings, nil
}

// Map returns all settings as key → value.
func Map(ctx context.Context, db *gorm.DB) (map[string]models.JSON, error) {
	settings, err := List(ctx, db)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.JSON, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Count returns the number of settings.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := db.WithContext(ctx).Model(&models.Setting{}).Count(&n).Error; err != nil {
		return 0, apperror.Store(err)
	}

	return n, nil
}

// Create creates a new setting. An existing key yields ErrSettingAlreadyExists.
func Create(ctx context.Context, db *gorm.DB, key string, value models.JSON) (*models.Setting, error) {
	if err := check(db, key); err != nil {
		return nil, err
	}

	setting := &models.Setting{Key: key, Value: value}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: keyColumn(), DoNothing: true}).
		Create(setting)
	if result.Error != nil {
		return nil, apperror.Store(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrSettingAlreadyExists
	}

	return setting, nil
}

// Update replaces the value of an existing setting. An absent key yields ErrSettingNotFound.
func Update(ctx context.Context, db *gorm.DB, key string, value models.JSON) (*models.Setting, error) {
	if err := check(db, key); err != nil {
		return nil, err
	}

	var setting models.Setting

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Setting{Key: key}).First(&setting).Error; err != nil {
			return err
		}

		setting.Value = value
		setting.UpdatedAt = time.Now()

		return tx.Model(&setting).Select("value", "updated_at").Updates(&setting).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, apperror.Store(err)
	}

	return &setting, nil
}

// Upsert inserts the setting or replaces its value in a single statement.
// Concurrent writers to the same key: last write wins.
func Upsert(ctx context.Context, db *gorm.DB, key string, value models.JSON) (*models.Setting, error) {
	if err := check(db, key); err != nil {
		return nil, err
	}

	setting := &models.Setting{Key: key, Value: value}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   keyColumn(),
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, apperror.Store(err)
	}

	return setting, nil
}

// UpsertMany upserts every entry of values in one statement, in key order.
func UpsertMany(ctx context.Context, db *gorm.DB, values map[string]models.JSON) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if len(values) == 0 {
		return []models.Setting{}, nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			return nil, ErrSettingKeyEmpty
		}

		keys = append(keys, k)
	}

	sort.Strings(keys)

	settings := make([]models.Setting, 0, len(keys))
	for _, k := range keys {
		settings = append(settings, models.Setting{Key: k, Value: values[k]})
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   keyColumn(),
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&settings).Error
	if err != nil {
		return nil, apperror.Store(err)
	}

	return settings, nil
}

// Delete removes a setting. Deleting an absent key is not an error.
func Delete(ctx context.Context, db *gorm.DB, key string) error {
	if err := check(db, key); err != nil {
		return err
	}

	if err := db.WithContext(ctx).Where(&models.Setting{Key: key}).Delete(&models.Setting{}).Error; err != nil {
		return apperror.Store(err)
	}

	return nil
}
