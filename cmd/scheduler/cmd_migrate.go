package main

import (
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/app"
	"github.com/Freeeeeet/interview_scheduler/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrator, closeFn, err := openMigrator(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		return migrator.Run(cmd.Context())
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrator, closeFn, err := openMigrator(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		version, err := migrator.Version(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openMigrator(cmd *cobra.Command) (*app.Migrator, func(), error) {
	if err := loadConfig(); err != nil {
		return nil, nil, err
	}
	if cfg.StorageDriver != config.DriverPostgres {
		return nil, nil, fmt.Errorf("migrations need STORAGE_DRIVER=postgres, got %q", cfg.StorageDriver)
	}

	pool, err := app.OpenPool(cmd.Context(), cfg.GetDBDSN())
	if err != nil {
		return nil, nil, err
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := migrator.Close(); err != nil {
			logger.Warn("Failed to close migrator", zap.Error(err))
		}
		pool.Close()
	}
	return migrator, closeFn, nil
}
