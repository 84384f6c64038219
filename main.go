package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jamesleighton95-code/Application-Portfolio/internal/config"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/database"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/router"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/session"
	"github.com/jamesleighton95-code/Application-Portfolio/internal/util"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Storage.UploadDir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}
	if cfg.Log.File != "" {
		if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
			log.Fatalf("create log dir: %v", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		gin.DefaultWriter = io.MultiWriter(os.Stdout, f)
		log.SetOutput(gin.DefaultWriter)
	}

	// sessions signed with an ephemeral secret survive only until the
	// next restart; fine for development, set session.secret otherwise
	if cfg.Session.Secret == "" {
		secret, err := util.RandomString(32)
		if err != nil {
			log.Fatalf("generate session secret: %v", err)
		}
		cfg.Session.Secret = secret
		log.Printf("warning: session.secret not set, using an ephemeral secret")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	sessions := session.NewManager(db, cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.TTLHours)
	if n, err := sessions.PurgeExpired(); err != nil {
		log.Printf("purge sessions: %v", err)
	} else if n > 0 {
		log.Printf("purged %d expired sessions", n)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
