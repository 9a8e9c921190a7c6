package models

// Education is one degree or programme on the education timeline.
type Education struct {
	Base

	Degree       string `gorm:"size:255;not null" json:"degree" validate:"required"`
	Institution  string `gorm:"size:255;not null" json:"institution" validate:"required"`
	Location     string `gorm:"size:255" json:"location"`
	FieldOfStudy string `gorm:"size:255" json:"field_of_study"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
	Description  string `gorm:"type:text" json:"description"`
	// Details holds free form extras such as thesis title or honours.
	Details    JSON `json:"details"`
	OrderIndex int  `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (Education) TableName() string {
	return "education"
}
