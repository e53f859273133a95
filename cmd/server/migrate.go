package main

import (
	"fmt"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = config.CloseDatabase(db) }()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			log.Info().Msg("database migration completed")
			return nil
		},
	}
}
