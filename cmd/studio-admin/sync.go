package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
)

var syncClear bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the local tables to the configured mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if syncClear {
				if err := a.Sync.Reset(ctx); err != nil {
					return err
				}
			}
			report, err := a.Sync.Sync(ctx)
			if report != nil {
				out := cmd.OutOrStdout()
				for _, table := range report.Tables {
					fmt.Fprintf(out, "%-16s pushed=%d failed=%d\n", table.Table, table.Pushed, table.Failed)
				}
				fmt.Fprintf(out, "sync %s %s\n", report.ID, report.Status)
			}
			return err
		})
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncClear, "clear", false, "clear the mirror before copying")
	rootCmd.AddCommand(syncCmd)
}
