package router

import (
	"net/http"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/config"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/handler"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/middleware"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/session"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/storage"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	sessions := session.NewManager(db, cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.TTLHours)
	r.Use(middleware.Sessions(sessions))

	// login page
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "File Locker - Login",
		})
	})

	r.GET("/register", func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"title": "File Locker - Register",
		})
	})

	// main page, only for logged-in users
	r.GET("/dashboard", middleware.RequireLogin("/"), func(c *gin.Context) {
		username, _ := middleware.Username(c)
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"title":    "File Locker - Dashboard",
			"username": username,
		})
	})

	users := store.NewUserStore(db)
	uploads := store.NewUploadStore(db)
	files := storage.New(cfg.Storage.UploadDir)

	authHandler := handler.NewAuthHandler(users, sessions, cfg.Security.BcryptCost)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	uploadHandler := handler.NewUploadHandler(uploads, files)
	r.POST("/upload", uploadHandler.Upload)
	r.GET("/latest-upload", uploadHandler.LatestUpload)
	r.GET("/export/xlsx", uploadHandler.ExportXLSX)

	// uploaded files are served as-is, one directory per user
	r.Static("/uploads", cfg.Storage.UploadDir)

	return r
}
