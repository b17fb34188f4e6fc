package cmd

import (
	"fmt"
	"os"

	"diary-store/core/config"
	"diary-store/core/database"
	"diary-store/core/logger"
	"diary-store/feature/diary"
	"diary-store/feature/diary/cache"
	"diary-store/feature/diary/style"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "diary-store",
	Short: "Diary Store Service",
	Long: `Diary Store is the persistence layer for a personal diary application.
It reconciles in-memory entries and comments against the backing database
and maintains a parsed-entry cache in front of it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads configuration and wires the engine for a command run.
// The database handle is lazy; the first engine call connects.
func bootstrap() (*config.Config, *zap.Logger, *diary.Engine, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewLazy(cfg.Database).Get()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	engine := diary.NewEngine(db, style.NewRegistry(), cache.New(), cfg.Cache, l)
	return cfg, l, engine, nil
}
