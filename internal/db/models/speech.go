package models

// Speech is a talk, keynote or panel appearance.
type Speech struct {
	Base

	Title    string `gorm:"size:512;not null" json:"title" validate:"required"`
	Event    string `gorm:"size:512;not null" json:"event" validate:"required"`
	Location string `gorm:"size:255" json:"location"`
	// Date is YYYY-MM-DD so that lexical order is chronological order.
	Date        string `gorm:"size:10;not null;index" json:"date" validate:"required,datetime=2006-01-02"`
	Type        string `gorm:"size:64" json:"type"`
	Description string `gorm:"type:text" json:"description"`
	URL         string `gorm:"column:url;size:1024" json:"url"`
	ImageURL    string `gorm:"column:image_url;size:1024" json:"image_url"`
}

// TableName implements gorm's tabler.
func (Speech) TableName() string {
	return "speeches"
}
