package models

// Publication types.
const (
	PublicationJournal    = "journal"
	PublicationConference = "conference"
	PublicationBook       = "book"
	PublicationChapter    = "chapter"
	PublicationPreprint   = "preprint"
	PublicationOther      = "other"
)

// Publication is a paper, book or chapter.
type Publication struct {
	Base

	Title      string `gorm:"size:512;not null" json:"title" validate:"required"`
	Authors    string `gorm:"size:1024;not null" json:"authors" validate:"required"`
	Journal    string `gorm:"size:512" json:"journal"`
	Year       int    `gorm:"index" json:"year" validate:"required"`
	Type       string `gorm:"size:32;not null" json:"type" validate:"required,oneof=journal conference book chapter preprint other"` //nolint:lll
	Volume     string `gorm:"size:64" json:"volume"`
	Pages      string `gorm:"size:64" json:"pages"`
	DOI        string `gorm:"column:doi;size:255" json:"doi"`
	URL        string `gorm:"column:url;size:1024" json:"url"`
	PDFURL     string `gorm:"column:pdf_url;size:1024" json:"pdf_url"`
	Abstract   string `gorm:"type:text" json:"abstract"`
	Citations  int    `json:"citations"`
	OrderIndex int    `json:"order_index"`
}

// TableName implements gorm's tabler.
func (Publication) TableName() string {
	return "publications"
}
