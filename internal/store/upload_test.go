package store

import (
	"testing"
	"time"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/models"
)

func TestLatestForNoUploads(t *testing.T) {
	s := NewUploadStore(testDB(t))

	rec, err := s.LatestFor("alice")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec != nil {
		t.Errorf("want nil for user with no uploads, got %+v", rec)
	}
}

func TestLatestForReturnsNewest(t *testing.T) {
	s := NewUploadStore(testDB(t))

	if err := s.Insert("alice", "100.txt", "a.txt"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert("alice", "200.txt", "b.txt"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// another user's upload must not leak in
	if err := s.Insert("bob", "300.txt", "c.txt"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, err := s.LatestFor("alice")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.OriginalFilename != "b.txt" {
		t.Errorf("latest original filename: want b.txt, got %s", rec.OriginalFilename)
	}
}

func TestLatestForIdenticalTimestamps(t *testing.T) {
	db := testDB(t)
	s := NewUploadStore(db)

	// force the exact same uploaded_at on both rows; the higher id
	// (later insert) must win
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"first.txt", "second.txt"} {
		rec := models.Upload{
			Username:         "alice",
			StoredFilename:   name,
			OriginalFilename: name,
			UploadedAt:       ts,
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	rec, err := s.LatestFor("alice")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec == nil || rec.StoredFilename != "second.txt" {
		t.Errorf("tie should go to the later insert, got %+v", rec)
	}
}

func TestAllForNewestFirst(t *testing.T) {
	s := NewUploadStore(testDB(t))

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := s.Insert("alice", name, name); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	recs, err := s.AllFor("alice")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 uploads, got %d", len(recs))
	}
	if recs[0].OriginalFilename != "c.txt" {
		t.Errorf("newest first: want c.txt, got %s", recs[0].OriginalFilename)
	}

	recs, err = s.AllFor("nobody")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("want empty slice for unknown user, got %d rows", len(recs))
	}
}
