package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audioscribe/internal/app"
	"audioscribe/internal/app/logging"
	"audioscribe/internal/app/repository/migrate"
	"audioscribe/internal/config"
)

var (
	autoMigrate     bool
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "create missing tables before serving")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "time allowed for in-flight requests on shutdown")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API

- Configuration is read from the environment and .env files
- OPENAI_API_KEY and AUTH_JWT_SECRET are required
- SIGINT/SIGTERM drain in-flight requests before exiting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		logger, err := logging.NewLogger(cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if autoMigrate {
			if err := runMigrations(ctx, cfg); err != nil {
				return err
			}
			logger.Info("database schema up to date", zap.String("driver", cfg.Database.Driver))
		}

		srv, cleanup, err := app.InitializeServer(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize server", zap.Error(err))
			return err
		}
		defer cleanup()

		return srv.Run(ctx, shutdownTimeout)
	},
}

func runMigrations(ctx context.Context, cfg *config.Config) error {
	db, closeDB, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	return migrate.Up(ctx, db, cfg.Database.DriverName())
}
