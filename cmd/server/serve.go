package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub/auth-service/internal/app"
	"github.com/studyhub/auth-service/internal/config"
	"github.com/studyhub/auth-service/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init("auth-service", version, cfg.LogFormat, nil)

	ctx, stop := signal.NotifyContext(
		parent,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- application.Run()
	}()

	logger.Info("auth-service started", map[string]any{
		"port":            cfg.AppPort,
		"storage_backend": cfg.StorageBackend,
		"session_backend": cfg.SessionBackend,
	})

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received", nil)
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server failed", map[string]any{"error": err.Error()})
			_ = application.Shutdown(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("auth-service stopped cleanly", nil)
	return nil
}
