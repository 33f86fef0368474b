package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarkTegna/netwalker/pkg/export"
)

var (
	exportDBPath string
	exportRunID  uint
	exportCSVDir string
	exportPDF    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export a stored collection run",
	Long: `Export reloads a collection run from the SQLite store, re-derives
the deduplicated inventory and summary relationships, and writes CSV
and/or PDF output. Without --run the most recent run is used.

Examples:
  netwalker export --csv-dir out/
  netwalker export --run 3 --pdf report.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportCSVDir == "" && exportPDF == "" {
			return fmt.Errorf("nothing to export: use --csv-dir and/or --pdf")
		}

		dbPath := exportDBPath
		if dbPath == "" {
			dbPath = userSettings.GetStorePath()
		}
		store, err := export.OpenStore(dbPath)
		if err != nil {
			return fmt.Errorf("opening store %s: %w", dbPath, err)
		}

		runID := exportRunID
		if runID == 0 {
			runID, err = store.LatestRunID()
			if err != nil {
				return fmt.Errorf("finding latest run: %w", err)
			}
		}

		report, err := store.LoadReport(runID)
		if err != nil {
			return fmt.Errorf("loading run %d: %w", runID, err)
		}

		if exportCSVDir != "" {
			if err := export.WriteCSVDir(exportCSVDir, report); err != nil {
				return fmt.Errorf("writing CSV export: %w", err)
			}
			fmt.Printf("Run %d CSV export written to %s/\n", runID, exportCSVDir)
		}
		if exportPDF != "" {
			if err := export.WriteSummaryPDF(exportPDF, report); err != nil {
				return fmt.Errorf("writing PDF report: %w", err)
			}
			fmt.Printf("Run %d PDF report written to %s\n", runID, exportPDF)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "SQLite store path (default: settings store path)")
	exportCmd.Flags().UintVar(&exportRunID, "run", 0, "Run ID to export (default: latest)")
	exportCmd.Flags().StringVar(&exportCSVDir, "csv-dir", "", "Directory for CSV output")
	exportCmd.Flags().StringVar(&exportPDF, "pdf", "", "Path for the PDF summary report")
}
