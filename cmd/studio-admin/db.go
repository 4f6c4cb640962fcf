package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the local schema up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Admin.Migrate(ctx); err != nil {
				return err
			}
			version, err := a.Admin.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every teacher, course and class instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes all studio data; pass --yes to confirm")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Admin.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database reset")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(migrateCmd, resetCmd)
}
