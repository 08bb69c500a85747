// Package config handles configuration for the user API daemon,
// including defaults, a .env file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/audit"
)

// ErrMissingSigningKey is returned by Validate when no token signing key is configured.
var ErrMissingSigningKey = errors.New("JWT signing key is missing (set JWT_KEY or --jwt-key)")

// Config holds runtime settings for the daemon.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SigningKey: HMAC secret for HS256 bearer tokens. Required.
//   - TokenTTL: lifetime of issued tokens.
//   - AuditLogPath: append-only request/response log file.
//   - SeedFile: optional JSON or YAML user list replacing the built-in seed.
//   - LogLevel / LogFormat: operational logger settings.
//   - GinMode: gin's debug, release or test mode.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	Addr            string
	SigningKey      string
	TokenTTL        time.Duration
	AuditLogPath    string
	SeedFile        string
	LogLevel        string
	LogFormat       string
	GinMode         string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults. No signing key is defaulted.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SigningKey = ""
	c.TokenTTL = time.Hour
	c.AuditLogPath = audit.DefaultPath
	c.SeedFile = ""
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.GinMode = gin.ReleaseMode
	c.ShutdownTimeout = 10 * time.Second
}

// Validate reports the first setting the daemon cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SigningKey) == "" {
		return ErrMissingSigningKey
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	if strings.TrimSpace(c.AuditLogPath) == "" {
		return errors.New("audit log path must not be empty")
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	return nil
}

// Load builds a Config by applying defaults, then the .env file, then the process
// environment, and finally the command-line flags in args. The result is validated.
func Load(args []string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := withDotenv(lookup)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
