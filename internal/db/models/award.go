package models

// Award is a prize or honour.
type Award struct {
	Base

	Title        string `gorm:"size:255;not null" json:"title" validate:"required"`
	Organization string `gorm:"size:255" json:"organization"`
	Year         int    `gorm:"index" json:"year" validate:"required"`
	Description  string `gorm:"type:text" json:"description"`
	Category     string `gorm:"size:64" json:"category"`
	OrderIndex   int    `json:"order_index"`
}

// TableName implements gorm's tabler.
func (Award) TableName() string {
	return "awards"
}
