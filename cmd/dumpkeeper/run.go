package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Dump, rotate and upload once, then exit",
	Args:  cobra.NoArgs,
	RunE:  runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		_, err := a.RunOnce(ctx)
		return err
	})
}
