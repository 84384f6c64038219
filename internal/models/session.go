package models

import "time"

// Session stores one browser login (for logout and invalidation).
// A user may hold any number of live sessions at once.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	Username  string    `gorm:"size:64;index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}
