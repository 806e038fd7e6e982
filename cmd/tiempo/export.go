package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tiempo/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as JSON or PDF",
}

var exportBackupCmd = &cobra.Command{
	Use:   "backup [DATE]",
	Short: "Write a JSON backup of one day's sessions (defaults to today)",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportBackup")
		if err != nil {
			return err
		}
		defer a.Close()

		date := time.Now().UTC().Format("2006-01-02")
		if len(args) == 1 {
			date = args[0]
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" {
			path = fmt.Sprintf("tiempo-backup-%s.json", date)
		}

		if err := export.SaveDailyBackup(a.Service(), date, path); err != nil {
			return err
		}

		fmt.Printf("Backup written to %s\n", path)
		return nil
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf [START_DATE END_DATE]",
	Short: "Write a PDF time report (defaults to the current month)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportPDF")
		if err != nil {
			return err
		}
		defer a.Close()

		startDate, endDate := export.CurrentMonthRange(time.Now())
		if len(args) == 2 {
			startDate, endDate = args[0], args[1]
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" {
			path = fmt.Sprintf("tiempo-report-%s-%s.pdf", startDate, endDate)
		}

		if err := export.GeneratePDFReport(a.Service(), startDate, endDate, path); err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	exportBackupCmd.Flags().String("output", "", "output file path")
	exportPDFCmd.Flags().String("output", "", "output file path")

	exportCmd.AddCommand(exportBackupCmd, exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
}
