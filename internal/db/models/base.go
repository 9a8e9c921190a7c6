// Package models contains database model definitions.
package models

import "time"

// Base carries the surrogate key and gorm managed timestamps shared by every content table.
type Base struct {
	// ID is the generated surrogate key.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// CreatedAt is set by gorm on insert.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is refreshed by gorm on every write.
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns one zero value of every model, in migration order.
func All() []any {
	return []any{
		&Setting{},
		&AdminUser{},
		&Session{},
		&Education{},
		&Publication{},
		&Speech{},
		&ResearchArea{},
		&Achievement{},
		&Award{},
		&Membership{},
		&GalleryImage{},
		&Testimonial{},
		&CommunityInitiative{},
		&Hero{},
	}
}

// PrimaryKey returns the surrogate key.
func (b Base) PrimaryKey() uint64 {
	return b.ID
}
