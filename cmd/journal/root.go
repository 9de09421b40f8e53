package main

import (
	"fmt"
	"os"

	"tradejournal/internal/config"
	"tradejournal/internal/database"
	"tradejournal/internal/logger"
	"tradejournal/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Local trading journal with analytics",
	Long: `A trading journal that stores trades, wallet transactions, goals and
strategies in a local database and derives performance analytics from them.
The serve command exposes everything over HTTP for the web and desktop
frontends; import, export and report work directly against the database.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "./configs", "path to configuration directory")
	rootCmd.AddCommand(serveCmd, importCmd, exportCmd, reportCmd)
}

// bootstrap loads the environment, configuration and logger, and opens the
// journal database. Shared by every subcommand.
func bootstrap() (*config.Config, *zap.Logger, *store.Store, error) {
	// Secrets like the webhook URL live in .env during development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not initialize logger: %w", err)
	}

	db, err := database.NewDatabase(&cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return &cfg, log, store.NewStore(db, log), nil
}
