package config

import (
	"github.com/spf13/pflag"
)

// parseFlags overlays command-line flags on the config.
//
// Supported flags:
//
//	--addr string            HTTP bind address (e.g. ":8080")
//	--jwt-key string         token signing key
//	--token-ttl duration     token lifetime (e.g. "1h")
//	--audit-log string       audit log file path
//	--seed-file string       JSON or YAML seed user list
//	--log-level string       debug, info, warn or error
//	--log-format string      json or text
//	--gin-mode string        debug, release or test
//	--shutdown-timeout dur   grace period on shutdown
func (c *Config) parseFlags(args []string) error {
	fs := pflag.NewFlagSet("userapi", pflag.ContinueOnError)

	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP bind address")
	fs.StringVar(&c.SigningKey, "jwt-key", c.SigningKey, "token signing key")
	fs.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "token lifetime")
	fs.StringVar(&c.AuditLogPath, "audit-log", c.AuditLogPath, "audit log file path")
	fs.StringVar(&c.SeedFile, "seed-file", c.SeedFile, "JSON or YAML seed user list")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (json, text)")
	fs.StringVar(&c.GinMode, "gin-mode", c.GinMode, "gin mode (debug, release, test)")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "grace period on shutdown")

	return fs.Parse(args)
}
