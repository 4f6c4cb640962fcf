package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/logger"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "studio-admin",
	Short:         "Manage yoga studio teachers, courses and class instances",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
}

// openApp loads configuration and wires every service. Callers must Close
// the returned app and Sync the logger.
func openApp(ctx context.Context) (*app.App, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(ctx, cfg, logr)
	if err != nil {
		_ = logr.Sync()
		return nil, nil, err
	}
	return a, logr, nil
}

// withApp runs fn against a wired app and tears it down afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, logr, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck
	defer a.Close()   //nolint:errcheck
	return fn(ctx, a)
}
