// Package storage writes uploaded bytes to a per-user directory under a
// single upload root. Stored names are generated server-side; the
// client-supplied name contributes only its extension, so a hostile
// filename can never influence the path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage persists uploaded files below Root, one subdirectory per
// username.
type Storage struct {
	Root string
}

func New(root string) *Storage {
	return &Storage{Root: root}
}

// UserDir returns the directory holding a user's files.
func (s *Storage) UserDir(username string) string {
	return filepath.Join(s.Root, username)
}

// EnsureUserDir creates a user's directory tree if needed. Safe to call
// concurrently for the same username; "already exists" is success.
func (s *Storage) EnsureUserDir(username string) error {
	if err := os.MkdirAll(s.UserDir(username), 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}
	return nil
}

// Store writes the stream into the user's directory under a generated
// name (millisecond timestamp plus the original extension) and returns
// that name. A same-millisecond collision bumps the timestamp rather
// than overwriting.
func (s *Storage) Store(username, originalFilename string, r io.Reader) (string, error) {
	if err := s.EnsureUserDir(username); err != nil {
		return "", err
	}

	ext := sanitizeExt(originalFilename)
	ms := time.Now().UnixMilli()

	for {
		name := strconv.FormatInt(ms, 10) + ext
		path := filepath.Join(s.UserDir(username), name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				ms++
				continue
			}
			return "", fmt.Errorf("create upload file: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write upload file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close upload file: %w", err)
		}
		return name, nil
	}
}

// sanitizeExt extracts the extension of a client-supplied filename,
// discarding any directory part first. Extensions with path separators
// or other oddities collapse to empty.
func sanitizeExt(originalFilename string) string {
	ext := filepath.Ext(filepath.Base(originalFilename))
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
