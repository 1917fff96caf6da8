package models

import "time"

// Only one row per email is kept; issuing a new code replaces it.
type VerificationCode struct {
	ID      uint   `gorm:"primaryKey"`
	Email   string `gorm:"size:100;uniqueIndex;not null"`
	Code    string `gorm:"size:6;not null"`
	Purpose string `gorm:"size:20;not null"`

	CreatedAt time.Time `gorm:"not null"`
}
