package models

import "gorm.io/gorm"

// User represents a registered account
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null;size:100"`
	PasswordHash string `gorm:"not null"`

	Reviews []Review `gorm:"foreignKey:UserID"`
}
