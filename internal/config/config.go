package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	AdminUser string
	// Bcrypt hash of the admin password. Empty hash disables admin login.
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "suraah.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./suraah.log"
	}

	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "dev-only-secret-change-me"
		log.Printf("[config] TOKEN_SECRET not set, using insecure dev default")
	}
	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("[config] bad TOKEN_TTL %q, keeping %s", v, ttl)
		}
	}

	cfg := Config{
		Port:              port,
		DBDSN:             dsn,
		MediaDir:          media,
		LogFile:           logFile,
		AdminUser:         adminUser,
		AdminPasswordHash: adminHash,
		TokenSecret:       secret,
		TokenTTL:          ttl,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s ADMIN_USER=%s TOKEN_TTL=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.AdminUser, cfg.TokenTTL)
	return cfg
}
