package main

import (
	"fmt"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/config"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin and a demo course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = config.CloseDatabase(db) }()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			return config.NewSeeder(db, cfg.Seed, log).Run(cmd.Context())
		},
	}
}
