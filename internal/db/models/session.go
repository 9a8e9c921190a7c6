package models

// Session is a server side session row for the sqlite engine.
// MySQL and Postgres use the gofiber storage drivers with their own table.
type Session struct {
	// Key is the session id.
	Key string `gorm:"primaryKey;size:64"`
	// Data is the encoded session payload.
	Data []byte
	// ExpiresAt is a unix timestamp, 0 means no expiry.
	ExpiresAt int64 `gorm:"index"`
}

// TableName implements gorm's tabler.
func (Session) TableName() string {
	return "admin_sessions"
}
