package models

// Hero is the banner at the top of the home page. The first active row is shown.
type Hero struct {
	Base

	Name     string `gorm:"size:255;not null" json:"name" validate:"required"`
	Title    string `gorm:"size:255" json:"title"`
	Subtitle string `gorm:"size:512" json:"subtitle"`
	Bio      string `gorm:"type:text" json:"bio"`
	ImageURL string `gorm:"column:image_url;size:1024" json:"image_url"`
	CVURL    string `gorm:"column:cv_url;size:1024" json:"cv_url"`
	Stats    JSON   `json:"stats"`
	IsActive bool   `json:"is_active"`
}

// TableName implements gorm's tabler.
func (Hero) TableName() string {
	return "hero_section"
}
