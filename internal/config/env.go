package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvFile            = "USERAPI_ENV_FILE"
	EnvAddr            = "USERAPI_ADDR"
	EnvSigningKey      = "JWT_KEY"
	EnvTokenTTL        = "USERAPI_TOKEN_TTL"
	EnvAuditLog        = "USERAPI_AUDIT_LOG"
	EnvSeedFile        = "USERAPI_SEED_FILE"
	EnvLogLevel        = "USERAPI_LOG_LEVEL"
	EnvLogFormat       = "USERAPI_LOG_FORMAT"
	EnvGinMode         = "GIN_MODE"
	EnvShutdownTimeout = "USERAPI_SHUTDOWN_TIMEOUT"
)

const defaultEnvFile = ".env"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// withDotenv layers the .env file under lookup: real environment variables win.
// A missing file is not an error.
func withDotenv(lookup LookupFunc) (LookupFunc, error) {
	path := defaultEnvFile
	if p, ok := lookup(EnvFile); ok && p != "" {
		path = p
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAddr, &c.Addr)
	str(EnvSigningKey, &c.SigningKey)
	str(EnvAuditLog, &c.AuditLogPath)
	str(EnvSeedFile, &c.SeedFile)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFormat, &c.LogFormat)
	str(EnvGinMode, &c.GinMode)
	if err := dur(EnvTokenTTL, &c.TokenTTL); err != nil {
		return err
	}
	return dur(EnvShutdownTimeout, &c.ShutdownTimeout)
}
