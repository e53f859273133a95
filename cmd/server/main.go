package main

import (
	"fmt"
	"os"

	"learnhub/internal/config"
	"learnhub/internal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "learnhub/docs" // Swagger docs
)

// @title learnhub API
// @version 1.0
// @description Course catalog, enrollment and purchase API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@learnhub.example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "learnhub",
		Short:         "learnhub API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())

	// Running without a subcommand starts the server
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// bootstrap loads configuration, builds the logger and opens the store.
// The caller owns the returned handle.
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, envFileFound, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.AppMode, cfg.LogLevel)
	if !envFileFound {
		log.Warn().Msg(".env file not found, using environment variables")
	}
	log.Info().Str("mode", cfg.AppMode).Msg("configuration loaded")

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, log, nil, err
	}
	log.Info().Str("store", cfg.Database.Describe()).Msg("database connected")

	return cfg, log, db, nil
}
