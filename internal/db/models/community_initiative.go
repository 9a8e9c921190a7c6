package models

// CommunityInitiative is outreach or volunteering work.
type CommunityInitiative struct {
	Base

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Role        string `gorm:"size:255" json:"role"`
	Impact      string `gorm:"type:text" json:"impact"`
	StartDate   string `gorm:"size:10" json:"start_date"`
	EndDate     string `gorm:"size:10" json:"end_date"`
	IsOngoing   bool   `json:"is_ongoing"`
	ImageURL    string `gorm:"column:image_url;size:1024" json:"image_url"`
	OrderIndex  int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (CommunityInitiative) TableName() string {
	return "community_initiatives"
}
