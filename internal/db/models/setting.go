package models

import "time"

// Setting is one entry of the site settings key-value store.
type Setting struct {
	// ID is the surrogate key, never exposed.
	ID uint64 `gorm:"primaryKey" json:"-"`
	// Key is the unique human chosen identifier, e.g. site_title.
	Key string `gorm:"size:191;not null;uniqueIndex" json:"key"`
	// Value is an arbitrary JSON payload.
	Value JSON `json:"value"`
	// CreatedAt is set by gorm on insert.
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is refreshed on every write.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements gorm's tabler.
func (Setting) TableName() string {
	return "site_settings"
}
