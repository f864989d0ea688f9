package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/cmd/cli/commands"
	"github.com/hopehub/hopehub/internal/config"
	"github.com/hopehub/hopehub/pkg/clients/cloudinaryclient"
	"github.com/hopehub/hopehub/pkg/clients/minioclient"
	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/postgres"
	"github.com/hopehub/hopehub/pkg/utils/logging"
)

var (
	env      string
	app      = &commands.AppContext{}
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hopehub",
		Short: "HopeHub CLI - Match disaster relief requests with donors",
		Long:  `A CLI tool for posting relief requests, pledging donations, and browsing shared study resources.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects hopehub_config.<env>.yaml)")

	rootCmd.AddCommand(commands.SubmitRequestCmd(app))
	rootCmd.AddCommand(commands.PledgeCmd(app))
	rootCmd.AddCommand(commands.ListRequestsCmd(app))
	rootCmd.AddCommand(commands.ViewDonationsCmd(app))
	rootCmd.AddCommand(commands.EmbedURLCmd(app))
	rootCmd.AddCommand(commands.ListResourcesCmd(app))
	rootCmd.AddCommand(commands.CheckDuplicateCmd(app))
	rootCmd.AddCommand(commands.ListCampaignsCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, store, and uploader
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Stdin = os.Stdin

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	if err := initStore(); err != nil {
		return err
	}

	return initUploader()
}

func initStore() error {
	switch app.Cfg.Database.Driver {
	case config.DriverPostgres:
		app.Logger.Info("Connecting to database")
		var err error
		database, err = postgres.NewDB(app.Ctx, app.Cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Store = database
		app.Migrator = database

		if app.Cfg.Database.RunMigrations {
			applied, err := database.RunMigrations(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			app.Logger.Info("Migrations applied", zap.Strings("files", applied))
		}
	default:
		app.Logger.Warn("Using in-memory store, data will not persist between runs")
		app.Store = db.NewMemoryStore()
	}

	app.Logger.Info("Store initialized successfully", zap.String("driver", app.Cfg.Database.Driver))
	return nil
}

func initUploader() error {
	mediaCfg := app.Cfg.Media

	switch mediaCfg.Backend {
	case config.BackendMinio:
		app.Logger.Info("Initializing minio client", zap.String("endpoint", mediaCfg.Minio.Endpoint))
		client, err := minioclient.NewClient(app.Ctx, minioclient.Config{
			Endpoint:      mediaCfg.Minio.Endpoint,
			AccessKey:     mediaCfg.Minio.AccessKey,
			SecretKey:     mediaCfg.Minio.SecretKey,
			Bucket:        mediaCfg.Minio.Bucket,
			UseSSL:        mediaCfg.Minio.UseSSL,
			Folder:        mediaCfg.Folder,
			PublicBaseURL: mediaCfg.Minio.PublicBaseURL,
		}, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to create minio client: %w", err)
		}
		app.Uploader = client
	default:
		app.Logger.Info("Initializing cloudinary client")
		client, err := cloudinaryclient.NewClient(cloudinaryclient.Config{
			CloudName:    mediaCfg.Cloudinary.CloudName,
			UploadPreset: mediaCfg.Cloudinary.UploadPreset,
			Folder:       mediaCfg.Folder,
		}, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to create cloudinary client: %w", err)
		}
		app.Uploader = client
	}

	app.Logger.Debug("Uploader initialized successfully", zap.String("backend", mediaCfg.Backend))
	return nil
}
