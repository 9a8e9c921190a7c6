package models

// ResearchArea is a research theme with its projects.
type ResearchArea struct {
	Base

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:64" json:"icon"`
	Projects    JSON   `json:"projects"`
	OrderIndex  int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (ResearchArea) TableName() string {
	return "research_areas"
}
