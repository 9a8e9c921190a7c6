package models

// GalleryImage is one picture of the gallery. The public page groups them by Category.
type GalleryImage struct {
	Base

	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"column:image_url;size:1024;not null" json:"image_url" validate:"required"`
	Category    string `gorm:"size:64" json:"category"`
	TakenOn     string `gorm:"size:10" json:"taken_on"`
	OrderIndex  int    `gorm:"index" json:"order_index"`
}

// TableName implements gorm's tabler.
func (GalleryImage) TableName() string {
	return "gallery_images"
}
