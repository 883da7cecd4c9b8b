package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays configuration from environment variables. cmd/server
// loads a .env file first (godotenv), so both real environments and local
// dotfiles end up here.
//
// Recognized variables:
//
//	ADDRESS          bind address
//	DATABASE_DSN     postgres DSN or SQLite path
//	SECRET_KEY       JWT signing secret
//	TOKEN_VALIDITY   duration string, e.g. "30m"
//	ALLOWED_ORIGINS  comma-separated CORS origins
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = splitOrigins(v)
	}
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
