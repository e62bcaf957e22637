package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "library-api",
		Short: "REST API for authors and their books",
		Long: `library-api serves a JSON REST API over authors and the books they own.

Configuration is read from config.yaml in the working directory (or the file
given with --config) and from LIBRARY_* environment variables, which take
precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run database migrations (if enabled) and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate [up|down|status|version|reset]",
		Short: "Manage the database schema",
		Long: `Run a migration command against the configured database.

  up       apply all pending migrations (default)
  down     roll back the most recent migration
  status   print the state of every migration
  version  print the current schema version
  reset    roll back all migrations`,
		Args: cobra.MaximumNArgs(1),
		ValidArgs: []string{
			sqlstore.MigrateUp,
			sqlstore.MigrateDown,
			sqlstore.MigrateStatus,
			sqlstore.MigrateVersion,
			sqlstore.MigrateReset,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := sqlstore.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}
			return runMigrate(cmd.Context(), configPath, command)
		},
	})

	return root
}

// loadConfig loads configuration and sets up structured logging.
func loadConfig(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	return cfg, log, nil
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, dialect, sqlstore.MigrateUp, log); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(cfg, log, db, dialect)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(ctx context.Context, configPath, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	return runMigrations(ctx, cfg, log, command)
}
