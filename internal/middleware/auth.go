package middleware

import (
	"net/http"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/session"

	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

// Sessions resolves the session cookie on every request and, when it
// maps to a live session, stores the username in the request context.
// It never aborts: handlers decide for themselves how to treat an
// anonymous caller (redirect, 400 or 401).
func Sessions(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(m.CookieName); err == nil {
			if username, ok := m.Resolve(cookie); ok {
				c.Set(userKey, username)
			}
		}
		c.Next()
	}
}

// RequireLogin gates browser-facing pages: anonymous requests get a
// redirect to the login page instead of an error status.
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Username(c); !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Username returns the authenticated username set by Sessions, if any.
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
