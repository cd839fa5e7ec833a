package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
)

var uploadCmd = &cobra.Command{
	Use:   "upload backup_file",
	Short: "Upload one existing backup file now, ignoring the upload gate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			remoteName, err := a.Upload(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", remoteName)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
