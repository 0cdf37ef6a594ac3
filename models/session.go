package models

import "time"

// Session stores server-side login sessions, keyed by the id carried in the
// session cookie. Expired rows are treated as absent on load.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
