package store

import (
	"errors"
	"fmt"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateUser is returned by UserStore.Create when the username is
// already taken.
var ErrDuplicateUser = errors.New("user already exists")

// UserStore persists account credentials. Username is the primary key, so
// duplicate registrations are rejected by the database even when two
// requests race past the application-level existence check.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// Exists reports whether a user with the given username is registered.
func (s *UserStore) Exists(username string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new user row. Returns ErrDuplicateUser when the
// username is already taken.
func (s *UserStore) Create(username, passwordHash string) error {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// PasswordHash returns the stored hash for a username. The second return
// value is false when no such user exists.
func (s *UserStore) PasswordHash(username string) (string, bool, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load user: %w", err)
	}
	return user.PasswordHash, true, nil
}
