package store

import (
	"path/filepath"
	"testing"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/config"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/database"

	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
