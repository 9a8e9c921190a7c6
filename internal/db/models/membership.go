package models

// Membership is a professional body membership.
type Membership struct {
	Base

	Organization string `gorm:"size:255;not null" json:"organization" validate:"required"`
	Role         string `gorm:"size:255" json:"role"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
	IsOngoing    bool   `json:"is_ongoing"`
	Description  string `gorm:"type:text" json:"description"`
	OrderIndex   int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (Membership) TableName() string {
	return "professional_memberships"
}
