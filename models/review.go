package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents one question/answer study entry
type Review struct {
	gorm.Model
	Category string `gorm:"not null;size:100"`
	Question string `gorm:"not null;size:1000"`
	Answer   string `gorm:"not null;size:1000"`

	// Time is the last-reviewed/rescheduled timestamp. It starts at the
	// creation time and is reset to now when the user marks the entry
	// "not remembered", restarting its recall interval.
	Time time.Time `gorm:"not null;index"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
}
