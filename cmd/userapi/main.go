package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/celerix-users/internal/audit"
	"github.com/celerix-dev/celerix-users/internal/auth"
	"github.com/celerix-dev/celerix-users/internal/config"
	"github.com/celerix-dev/celerix-users/internal/engine"
	"github.com/celerix-dev/celerix-users/internal/logging"
	"github.com/celerix-dev/celerix-users/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "userapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Seed the store
	seed := engine.DefaultSeed()
	if cfg.SeedFile != "" {
		if seed, err = engine.LoadSeed(cfg.SeedFile); err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
	}
	store := engine.NewMemStore(seed)
	log.Info(ctx, "user store ready", "users", len(seed), "seed_file", cfg.SeedFile)

	// 3. Tokens and audit log
	tokens, err := auth.NewTokenService(cfg.SigningKey, store, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		return err
	}
	auditLog, err := audit.NewFileWriter(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}

	// 4. Serve until SIGINT or SIGTERM
	router := server.NewRouter(server.Deps{
		Store:  store,
		Tokens: tokens,
		Audit:  auditLog,
		Log:    log,
	})
	if err := router.Listen(ctx, cfg.Addr, cfg.ShutdownTimeout); err != nil {
		return err
	}
	log.Info(context.Background(), "shutdown complete")
	return nil
}
