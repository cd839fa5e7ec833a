package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Delete backups older than the retention period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			result, err := a.Rotate(ctx)
			for _, name := range result.Deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", name)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(rotateCmd)
}
