// Package config handles configuration for the server,
// including defaults, JSON overlay, environment variables, and flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the gastor server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: postgres:// DSN (pgx) or a SQLite file path.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required; there is no
//     default. Rotating it invalidates every outstanding token.
//   - TokenValidityDuration: access token lifetime. Policy is 30 minutes;
//     the field exists so tests can shrink it, not as a deployment knob.
//   - AllowedOrigins: CORS origins for the browser frontend.
type Config struct {
	Addr                  string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	AllowedOrigins        []string
}

// LoadDefaults populates Config with development defaults. The secret key is
// deliberately left empty so an unconfigured server refuses to start.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = "gastor.db"
	c.SecretKey = ""
	c.TokenValidityDuration = 30 * time.Minute
	c.AllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is required: set SECRET_KEY or pass -s")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
