package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AdminConfig struct {
	Password string
	// PasswordHash is a bcrypt hash and takes precedence over Password.
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
}

var (
	adminConfig *AdminConfig
	adminOnce   sync.Once
)

func LoadAdminConfig() *AdminConfig {
	adminOnce.Do(func() {
		ttl := 12 * time.Hour
		if raw := os.Getenv("ADMIN_SESSION_TTL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil || parsed <= 0 {
				log.Printf("Warning: invalid ADMIN_SESSION_TTL %q, using %s", raw, ttl)
			} else {
				ttl = parsed
			}
		}
		adminConfig = &AdminConfig{
			Password:      os.Getenv("ADMIN_PASSWORD"),
			PasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
			SessionSecret: os.Getenv("ADMIN_SESSION_SECRET"),
			SessionTTL:    ttl,
		}
	})
	return adminConfig
}
