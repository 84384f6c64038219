package models

import "time"

// Upload is the metadata row for one stored file. The bytes themselves
// live on disk under the owner's upload directory; this record only
// points at them. Rows are insert-only.
//
// Username references User.Username but is not enforced with a database
// constraint; handlers only ever insert for an authenticated user.
type Upload struct {
	ID               uint      `gorm:"primaryKey"`
	Username         string    `gorm:"size:64;index;not null"`
	StoredFilename   string    `gorm:"size:255;not null"` // server-generated name on disk
	OriginalFilename string    `gorm:"size:255;not null"` // client-supplied, display only
	UploadedAt       time.Time `gorm:"index;not null;autoCreateTime"`
}
