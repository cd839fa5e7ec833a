package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/wvsbeta/dumpkeeper/internal/app"
)

const JSONFlag = "json"

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Show the backups in the backup directory and when they expire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return a.List(ctx, cmd.OutOrStdout(), listJSON)
			})
		},
	}
	listJSON = false
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, JSONFlag, false, "print the listing as JSON")
}
