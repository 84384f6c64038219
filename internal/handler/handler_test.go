package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/config"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/database"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/middleware"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/session"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/storage"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// testApp wires the handlers onto a bare engine the way the router does,
// with a throwaway database and upload root.
type testApp struct {
	router    *gin.Engine
	sessions  *session.Manager
	files     *storage.Storage
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	uploadDir := t.TempDir()
	sessions := session.NewManager(db, "test-secret", "ap_session", 1)
	files := storage.New(uploadDir)

	r := gin.New()
	r.Use(middleware.Sessions(sessions))

	authHandler := NewAuthHandler(store.NewUserStore(db), sessions, bcrypt.MinCost)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	uploadHandler := NewUploadHandler(store.NewUploadStore(db), files)
	r.POST("/upload", uploadHandler.Upload)
	r.GET("/latest-upload", uploadHandler.LatestUpload)
	r.GET("/export/xlsx", uploadHandler.ExportXLSX)

	r.GET("/dashboard", middleware.RequireLogin("/"), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})

	return &testApp{router: r, sessions: sessions, files: files, uploadDir: uploadDir}
}

// postForm issues an application/x-www-form-urlencoded POST.
func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// postFile issues a multipart POST with the given field carrying a file.
func (a *testApp) postFile(path, field, filename, content string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			panic(err)
		}
		_, _ = io.WriteString(fw, content)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account directly through the endpoint.
func (a *testApp) register(t *testing.T, username, password string) {
	t.Helper()
	w := a.postForm("/register", url.Values{
		"username": {username},
		"password": {password},
	})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Registration successful.") {
		t.Fatalf("register %s: code=%d body=%q", username, w.Code, w.Body.String())
	}
}

// login returns the session cookie issued for the user.
func (a *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := a.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("login %s: code=%d body=%q", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == a.sessions.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("login %s: no session cookie set", username)
	return nil
}
