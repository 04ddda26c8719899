package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	database "njangitech_backend/internals/databases"
	"njangitech_backend/internals/helpers/logger"
)

var rootCmd = &cobra.Command{
	Use:   "njangitech",
	Short: "Tontine association management API",
	Long: `njangitech runs the tontine management REST API and the maintenance
commands that go with it. Running it without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads .env and the configuration and opens the database.
func bootstrap() (*configs.AppConfig, *gorm.DB, error) {
	configs.LoadEnv()
	if err := logger.Init(configs.GetEnv("LOG_LEVEL", "info"), "njangitech"); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
