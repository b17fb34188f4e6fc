package cmd

import (
	"fmt"

	"diary-store/core/config"
	"diary-store/core/database"
	"diary-store/core/logger"
	"diary-store/feature/diary/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the diary schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the diary database schema",
	RunE:  runMigrate,
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	db, err := database.NewLazy(cfg.Database).Get()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := models.Migrate(db); err != nil {
		return err
	}

	l.Info("schema migrated", zap.String("database", cfg.Database.Name))
	return nil
}
