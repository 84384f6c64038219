package models

import "time"

// User represents a registered account. The username doubles as the
// primary key and as the name of the per-user upload directory, so it
// is immutable once created.
type User struct {
	Username     string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}
