package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backup on the configured cron schedule until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			return a.Serve(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
