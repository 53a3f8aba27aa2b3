package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"evergraze/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Give legacy tables an id column and create missing tables",
	Long: `Migrate inspects the livestock, weight_tracking and vaccinations tables.
Tables without an id column are rebuilt with one, keeping every row; missing
tables are created. Running it again changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Bootstrap(cfg.DBPath)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Schema ready in %s", cfg.DBPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
