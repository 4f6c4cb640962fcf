package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/yoga-studio-admin/internal/app"
	"github.com/noah-isme/yoga-studio-admin/pkg/storage"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the course timetable as CSV or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewLocalStorage(exportDir)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			path, err := a.Exports.SaveTimetable(ctx, store, courseSearch, exportFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or pdf")
	exportCmd.Flags().StringVar(&exportDir, "out", "./exports", "output directory")
	rootCmd.AddCommand(exportCmd)
}
