// Package adminuser manages the admin allow-list.
package adminuser

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/apperror"
	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrAdminNotFound is returned when no admin has the given email or id.
	ErrAdminNotFound = apperror.New(apperror.ErrNotFound, "admin not found")
	// ErrAdminExists is returned when adding an email that is already listed.
	ErrAdminExists = apperror.New(apperror.ErrConflict, "admin already exists")
	// ErrEmailInvalid is returned for empty or malformed emails.
	ErrEmailInvalid = apperror.New(apperror.ErrValidation, "a valid email address is required")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(db *gorm.DB, email string) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	email = NormalizeEmail(email)
	if email == "" {
		return "", ErrEmailInvalid
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrEmailInvalid
	}

	return email, nil
}

// IsAllowed reports whether email belongs to an active admin.
func IsAllowed(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	u, err := GetByEmail(ctx, db, email)

	switch {
	case errors.Is(err, ErrAdminNotFound), errors.Is(err, ErrEmailInvalid):
		return false, nil
	case err != nil:
		return false, err
	default:
		return u.Active, nil
	}
}

// Get returns the admin with the given id.
func Get(ctx context.Context, db *gorm.DB, id uint64) (*models.AdminUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.AdminUser
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}

		return nil, apperror.Store(err)
	}

	return &u, nil
}

// GetByEmail returns the admin with the given email.
func GetByEmail(ctx context.Context, db *gorm.DB, email string) (*models.AdminUser, error) {
	email, err := checkEmail(db, email)
	if err != nil {
		return nil, err
	}

	var u models.AdminUser
	if err = db.WithContext(ctx).Where(&models.AdminUser{Email: email}).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}

		return nil, apperror.Store(err)
	}

	return &u, nil
}

// List returns all admins ordered by email.
func List(ctx context.Context, db *gorm.DB) ([]models.AdminUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	users := []models.AdminUser{}
	if err := db.WithContext(ctx).Order("email").Find(&users).Error; err != nil {
		return nil, apperror.Store(err)
	}

	return users, nil
}

// Count returns the number of admins, active or not.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := db.WithContext(ctx).Model(&models.AdminUser{}).Count(&n).Error; err != nil {
		return 0, apperror.Store(err)
	}

	return n, nil
}

// Add puts an active admin on the allow-list. passwordHash may be empty for OIDC or LDAP only admins.
func Add(ctx context.Context, db *gorm.DB, email, name, passwordHash string) (*models.AdminUser, error) {
	email, err := checkEmail(db, email)
	if err != nil {
		return nil, err
	}

	u := &models.AdminUser{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		Active:       true,
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(u)
	if result.Error != nil {
		return nil, apperror.Store(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrAdminExists
	}

	return u, nil
}

// Remove deletes an admin from the allow-list.
func Remove(ctx context.Context, db *gorm.DB, email string) error {
	email, err := checkEmail(db, email)
	if err != nil {
		return err
	}

	result := db.WithContext(ctx).Where(&models.AdminUser{Email: email}).Delete(&models.AdminUser{})
	if result.Error != nil {
		return apperror.Store(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// SetPassword replaces the password hash.
func SetPassword(ctx context.Context, db *gorm.DB, email, passwordHash string) error {
	return update(ctx, db, email, "password_hash", passwordHash)
}

// SetTOTPSecret enables the second factor; an empty secret disables it.
func SetTOTPSecret(ctx context.Context, db *gorm.DB, email, secret string) error {
	return update(ctx, db, email, "totp_secret", secret)
}

// SetActive activates or deactivates an admin without removing it.
func SetActive(ctx context.Context, db *gorm.DB, email string, active bool) error {
	return update(ctx, db, email, "active", active)
}

func update(ctx context.Context, db *gorm.DB, email, column string, value any) error {
	email, err := checkEmail(db, email)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.AdminUser
		if err := tx.Where(&models.AdminUser{Email: email}).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}

			return apperror.Store(err)
		}

		if err := tx.Model(&u).Update(column, value).Error; err != nil {
			return apperror.Store(err)
		}

		return nil
	})
}
