package store

import (
	"errors"
	"fmt"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/models"

	"gorm.io/gorm"
)

// UploadStore persists upload metadata. Rows are insert-only.
type UploadStore struct {
	DB *gorm.DB
}

func NewUploadStore(db *gorm.DB) *UploadStore {
	return &UploadStore{DB: db}
}

// Insert records a completed upload for the given owner.
func (s *UploadStore) Insert(username, storedFilename, originalFilename string) error {
	rec := models.Upload{
		Username:         username,
		StoredFilename:   storedFilename,
		OriginalFilename: originalFilename,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// LatestFor returns the most recent upload for a user, or nil when the
// user has none. Uploads sharing an identical timestamp are broken by
// highest id, i.e. insertion order wins.
func (s *UploadStore) LatestFor(username string) (*models.Upload, error) {
	var rec models.Upload
	err := s.DB.Where("username = ?", username).
		Order("uploaded_at DESC, id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest upload: %w", err)
	}
	return &rec, nil
}

// AllFor returns every upload for a user, newest first.
func (s *UploadStore) AllFor(username string) ([]models.Upload, error) {
	var recs []models.Upload
	if err := s.DB.Where("username = ?", username).
		Order("uploaded_at DESC, id DESC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return recs, nil
}
