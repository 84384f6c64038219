package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/session"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/store"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/util"

	"github.com/gin-gonic/gin"
)

// Response bodies are plain text snippets; the pages posting these forms
// render them as-is. Unknown username and wrong password must share one
// body: the two cases are not distinguishable from outside.
const (
	msgUserExists      = "User already exists."
	msgRegisterError   = "Error registering user."
	msgRegisterSuccess = `Registration successful. <a href="/">Login</a>`
	msgInvalidLogin    = `Invalid credentials. <a href="/">Try again</a>`
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Users      *store.UserStore
	Sessions   *session.Manager
	BcryptCost int
}

func NewAuthHandler(users *store.UserStore, sessions *session.Manager, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		Users:      users,
		Sessions:   sessions,
		BcryptCost: bcryptCost,
	}
}

// Register handles POST /register with form fields username and password.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := util.ValidateUsername(username); err != nil {
		c.String(http.StatusBadRequest, "Invalid username: must be 3-20 letters, digits or underscore.")
		return
	}

	exists, err := h.Users.Exists(username)
	if err != nil {
		log.Printf("register: check user: %v", err)
		c.String(http.StatusOK, msgRegisterError)
		return
	}
	if exists {
		c.String(http.StatusOK, msgUserExists)
		return
	}

	hash, err := util.HashPassword(password, h.BcryptCost)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		c.String(http.StatusOK, msgRegisterError)
		return
	}

	if err := h.Users.Create(username, hash); err != nil {
		// two registrations may race past the existence check; the
		// primary key decides and the loser sees the duplicate message
		if errors.Is(err, store.ErrDuplicateUser) {
			c.String(http.StatusOK, msgUserExists)
			return
		}
		log.Printf("register: create user: %v", err)
		c.String(http.StatusOK, msgRegisterError)
		return
	}

	html(c, http.StatusOK, msgRegisterSuccess)
}

// Login handles POST /login. Success sets the session cookie and
// redirects to the dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	hash, found, err := h.Users.PasswordHash(username)
	if err != nil {
		log.Printf("login: load user: %v", err)
		c.String(http.StatusInternalServerError, "Server error.")
		return
	}
	if !found || !util.CheckPassword(password, hash) {
		html(c, http.StatusOK, msgInvalidLogin)
		return
	}

	token, err := h.Sessions.Create(username)
	if err != nil {
		log.Printf("login: create session: %v", err)
		c.String(http.StatusInternalServerError, "Server error.")
		return
	}

	maxAge := int(h.Sessions.TTL.Seconds())
	c.SetCookie(h.Sessions.CookieName, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout handles GET /logout. Always succeeds: the session is revoked if
// the cookie resolves, the cookie is cleared either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.Sessions.CookieName); err == nil {
		h.Sessions.Destroy(cookie)
	}
	c.SetCookie(h.Sessions.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// html writes a small HTML fragment (success/failure snippets carry a
// link back to the login page).
func html(c *gin.Context, status int, body string) {
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
