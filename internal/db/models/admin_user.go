package models

import "time"

// AdminUser is an entry of the admin allow-list.
// Only active rows grant access to the admin area.
type AdminUser struct {
	// ID is the unique identifier for the admin.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Email is the lowercased login identity, matched against OIDC and LDAP emails too.
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	// Name is a display name.
	Name string `gorm:"size:100" json:"name"`
	// PasswordHash is the argon2id hash for local logins. Empty for OIDC or LDAP only admins.
	PasswordHash string `gorm:"size:255" json:"-"`
	// TOTPSecret enables the second factor when set.
	TOTPSecret string `gorm:"column:totp_secret;size:64" json:"-"`
	// Active indicates whether the admin may log in.
	Active bool `json:"active"`
	// CreatedAt is the timestamp when the admin was added.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp of the last change.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements gorm's tabler.
func (AdminUser) TableName() string {
	return "admin_users"
}

// HasPassword reports whether a local password is configured.
func (u *AdminUser) HasPassword() bool {
	return u.PasswordHash != ""
}

// HasTOTP reports whether the second factor is enabled.
func (u *AdminUser) HasTOTP() bool {
	return u.TOTPSecret != ""
}
