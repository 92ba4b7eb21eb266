package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/studyhub/auth-service/internal/config"
	"github.com/studyhub/auth-service/internal/db"
	"github.com/studyhub/auth-service/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init("auth-service", version, cfg.LogFormat, nil)

			if cfg.StorageBackend != config.BackendPostgres {
				return errors.New("migrate requires STORAGE_BACKEND=postgres")
			}

			database, err := db.Open(cmd.Context(), cfg.DatabaseDSN, cfg.StartupTimeout)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(cmd.Context(), database.DB); err != nil {
				return err
			}

			logger.Info("migrations applied", nil)
			return nil
		},
	}
}
