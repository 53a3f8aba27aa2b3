package main

import (
	"github.com/spf13/cobra"

	"evergraze/config"
)

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "evergraze",
	Short: "Farm livestock records: weights, vaccinations and exports",
	Long: `EverGraze keeps livestock profiles, weight history and vaccination records
in a local sqlite database and exports them per animal as a workbook or a
printable report.

  $ evergraze                          # same as 'serve'
  $ evergraze migrate                  # normalize legacy tables and exit
  $ evergraze export A1 --format pdf   # render a report without the server

Configuration comes from the environment or a .env file (DB_PATH, PORT,
EXPORT_DRIVER, EXPORT_DIR, FARM_NAME, LOGO_PATH, RECENT_LIMIT).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}
