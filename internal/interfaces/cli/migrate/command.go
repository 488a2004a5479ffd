// Package migrate implements the `migrate` CLI command group.
package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loreforge/internal/infrastructure/config"
	"loreforge/internal/infrastructure/database"
	"loreforge/internal/infrastructure/migration"
	"loreforge/internal/shared/logger"
)

var (
	env string
	dir string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Load migration scripts from a directory instead of the embedded set")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)
	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			return engine.Migrate(context.Background())
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migration versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := engine.Status(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("applied: %d\n", len(status.Applied))
			for _, v := range status.Applied {
				fmt.Printf("  %s\n", v)
			}
			fmt.Printf("pending: %d\n", len(status.Pending))
			for _, v := range status.Pending {
				fmt.Printf("  %s\n", v)
			}
			return nil
		},
	}
}

func buildEngine() (*migration.Engine, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}

	source := migration.EmbeddedSource()
	if dir != "" {
		source = migration.NewDirSource(dir)
	}

	return migration.NewEngine(db, source, logger.NewLogger()), cleanup, nil
}
