package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"evergraze/database"
	"evergraze/pkg/export/service"
	exportSvcImp "evergraze/pkg/export/serviceImp"
	"evergraze/pkg/export/sink"
	recordRepoImp "evergraze/pkg/record/repositoryImp"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <animal_id>",
	Short: "Export one animal's records as a workbook or report",
	Long: `Export renders the same files as the /export routes.

Without --output the file goes to the configured export sink (EXPORT_DRIVER).
With --output it is written to that path instead.

EXAMPLES:

  evergraze export A1                     # workbook into EXPORT_DIR
  evergraze export A1 --format pdf -o a1.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := database.Bootstrap(cfg.DBPath)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		var out sink.Sink
		if exportOutput != "" {
			out = sink.NewMemory()
		} else if out, err = sink.Open(ctx, cfg.Export); err != nil {
			return err
		}
		svc := exportSvcImp.New(recordRepoImp.New(db), out, exportSvcImp.Options{FarmName: cfg.FarmName, LogoPath: cfg.LogoPath, FontPath: cfg.FontPath})

		var art *service.Artifact
		switch exportFormat {
		case "xlsx", "excel":
			art, err = svc.Workbook(ctx, args[0])
		case "pdf":
			art, err = svc.Document(ctx, args[0])
		default:
			return fmt.Errorf("unknown format %q (use xlsx or pdf)", exportFormat)
		}
		if err != nil {
			return err
		}

		where := art.Location
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, art.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", exportOutput, err)
			}
			where = exportOutput
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported %s", art.Name))
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %d bytes\n", color.New(color.Faint).Sprint(where), len(art.Data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "xlsx or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of the export sink")
	rootCmd.AddCommand(exportCmd)
}
