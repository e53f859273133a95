package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/adapters/http/routes"
	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/config"
	"learnhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the capacity audit job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() {
				if err := config.CloseDatabase(db); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			if migrate {
				if err := models.AutoMigrate(db); err != nil {
					return fmt.Errorf("failed to auto migrate: %w", err)
				}
				log.Info().Msg("database migration completed")
			}

			app := fiber.New(fiber.Config{
				AppName:      "learnhub API v1.0",
				ErrorHandler: middleware.CustomErrorHandler,
			})
			middleware.Setup(app, cfg)
			routes.Setup(app, db, cfg, log, routes.Options{Swagger: !cfg.IsProd()})

			audit := services.NewCapacityAuditService(repositories.NewCourseRepository(db), log)
			if cfg.Audit.Enabled {
				if err := audit.Start(cfg.Audit.Schedule); err != nil {
					return fmt.Errorf("invalid AUDIT_SCHEDULE %q: %w", cfg.Audit.Schedule, err)
				}
				defer audit.Stop()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
				return app.Listen(":" + cfg.Port)
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info().Msg("shutting down server")
				return app.Shutdown()
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run schema migration before serving")
	return cmd
}
