package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/server"
)

// runServe starts the HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context, flags *serveFlags, logger *slog.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.workers != 0 {
		cfg.Server.Workers = flags.workers
	}
	if flags.maxBodyBytes != 0 {
		cfg.Server.MaxBodyBytes = flags.maxBodyBytes
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.common.verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	pool := ai2docx.NewConverterPool(ai2docx.ResolvePoolSize(cfg.Server.Workers), converterOptions(cfg, logger)...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Warn("closing converter pool", "error", cerr)
		}
	}()

	srv := server.New(&server.PoolBackend{Pool: pool}, server.Config{
		Addr:         cfg.Server.Addr,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger,
	})

	logger.Debug("converter pool ready", "workers", pool.Size())
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
