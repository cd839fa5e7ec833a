package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
	"github.com/wvsbeta/dumpkeeper/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

var (
	configPath string

	// rootCmd without a subcommand behaves like "run".
	rootCmd = &cobra.Command{
		Use:           "dumpkeeper",
		Short:         "Dumps a database, rotates old dumps and ships them off-site",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runOnce,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
}

func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	return fn(ctx, application)
}
