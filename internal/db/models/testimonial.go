package models

// Testimonial is a quote about the site owner. Only active ones are shown publicly.
type Testimonial struct {
	Base

	Name         string `gorm:"size:255;not null" json:"name" validate:"required"`
	Role         string `gorm:"size:255" json:"role"`
	Organization string `gorm:"size:255" json:"organization"`
	Content      string `gorm:"type:text;not null" json:"content" validate:"required"`
	ImageURL     string `gorm:"column:image_url;size:1024" json:"image_url"`
	IsActive     bool   `json:"is_active"`
	OrderIndex   int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (Testimonial) TableName() string {
	return "testimonials"
}
