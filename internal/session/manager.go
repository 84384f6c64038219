// Package session implements cookie-backed login sessions with
// server-side lifecycle: each login inserts a sessions row keyed by a
// UUID, and the browser carries that ID inside a signed token. Logout
// revokes the row, which kills the cookie no matter how long the token
// itself would remain valid.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/models"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manager creates, resolves and destroys login sessions.
type Manager struct {
	DB         *gorm.DB
	Secret     string
	CookieName string
	TTL        time.Duration
}

// NewManager builds a Manager. ttlHours <= 0 falls back to 24.
func NewManager(db *gorm.DB, secret, cookieName string, ttlHours int) *Manager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if cookieName == "" {
		cookieName = "ap_session"
	}
	return &Manager{
		DB:         db,
		Secret:     secret,
		CookieName: cookieName,
		TTL:        time.Duration(ttlHours) * time.Hour,
	}
}

// Create establishes a new session for username and returns the cookie
// token. Existing sessions for the same user are left untouched; a user
// may be logged in from several browsers at once.
func (m *Manager) Create(username string) (string, error) {
	rec := models.Session{
		ID:        uuid.New().String(),
		Username:  username,
		ExpiresAt: time.Now().Add(m.TTL),
	}
	if err := m.DB.Create(&rec).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := util.SignSessionToken(m.Secret, rec.ID, m.TTL)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Resolve maps a cookie token back to a username. It returns false for
// tokens that are missing, malformed, forged, expired, revoked or
// pointing at an unknown session.
func (m *Manager) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims, err := util.ParseSessionToken(m.Secret, token)
	if err != nil {
		return "", false
	}

	var rec models.Session
	if err := m.DB.First(&rec, "id = ?", claims.SessionID).Error; err != nil {
		return "", false
	}
	if rec.Revoked || time.Now().After(rec.ExpiresAt) {
		return "", false
	}
	return rec.Username, true
}

// Destroy revokes the session a token points at. It is idempotent and
// never fails from the caller's point of view: invalid or already
// revoked tokens are simply ignored.
func (m *Manager) Destroy(token string) {
	if token == "" {
		return
	}
	claims, err := util.ParseSessionToken(m.Secret, token)
	if err != nil {
		return
	}
	_ = m.DB.Model(&models.Session{}).
		Where("id = ?", claims.SessionID).
		Update("revoked", true).Error
}

// PurgeExpired deletes sessions whose expiry has passed. Called as
// housekeeping at startup; errors other than "nothing to do" bubble up
// so the caller can log them.
func (m *Manager) PurgeExpired() (int64, error) {
	res := m.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
