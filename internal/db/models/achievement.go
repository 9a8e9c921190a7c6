package models

// Achievement is a highlighted accomplishment, optionally with headline numbers.
type Achievement struct {
	Base

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Year        int    `json:"year"`
	Category    string `gorm:"size:64" json:"category"`
	Icon        string `gorm:"size:64" json:"icon"`
	Stats       JSON   `json:"stats"`
	OrderIndex  int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (Achievement) TableName() string {
	return "achievements"
}
