package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tiempo/internal/export"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Time statistics",
}

var statsProjectCmd = &cobra.Command{
	Use:   "project PROJECT_ID",
	Short: "Totals for one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ProjectStats")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Service().ProjectStats(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Project:  %s\n", stats.ProjectID)
		fmt.Printf("Sessions: %d\n", stats.SessionCount)
		fmt.Printf("Total:    %s (%.2fh)\n", export.FormatDuration(stats.TotalSeconds), stats.TotalHours)
		return nil
	},
}

var statsAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Totals for every project, most-tracked first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AllProjectsStats")
		if err != nil {
			return err
		}
		defer a.Close()

		all, err := a.Service().AllProjectsStats()
		if err != nil {
			return err
		}

		if len(all) == 0 {
			fmt.Println("No tracked time.")
			return nil
		}
		for _, stats := range all {
			fmt.Printf("%s  %3d sessions  %8.2fh\n", stats.ProjectID, stats.SessionCount, stats.TotalHours)
		}
		return nil
	},
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily START_DATE END_DATE",
	Short: "Per-day totals with project breakdown (dates as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DailyStats")
		if err != nil {
			return err
		}
		defer a.Close()

		days, err := a.Service().DailyStats(args[0], args[1])
		if err != nil {
			return err
		}

		if len(days) == 0 {
			fmt.Println("No tracked time in range.")
			return nil
		}
		for _, day := range days {
			fmt.Printf("%s  %6.2fh\n", day.Date, day.TotalHours)
			for _, p := range day.ProjectBreakdown {
				client := "-"
				if p.ClientName != nil {
					client = *p.ClientName
				}
				fmt.Printf("    %-30s %-20s %6.2fh\n", p.ProjectName, client, p.TotalHours)
			}
		}
		return nil
	},
}

var statsRangeCmd = &cobra.Command{
	Use:   "range [START_DATE END_DATE]",
	Short: "Per-project totals over a date range (defaults to the current month)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DateRangeStats")
		if err != nil {
			return err
		}
		defer a.Close()

		startDate, endDate := export.CurrentMonthRange(time.Now())
		if len(args) == 2 {
			startDate, endDate = args[0], args[1]
		}

		breakdown, err := a.Service().DateRangeStats(startDate, endDate)
		if err != nil {
			return err
		}

		fmt.Printf("%s to %s\n", startDate, endDate)
		if len(breakdown) == 0 {
			fmt.Println("No tracked time in range.")
			return nil
		}
		var total float64
		for _, p := range breakdown {
			client := "-"
			if p.ClientName != nil {
				client = *p.ClientName
			}
			fmt.Printf("%-30s %-20s %6.2fh\n", p.ProjectName, client, p.TotalHours)
			total += p.TotalHours
		}
		fmt.Printf("%-51s %6.2fh\n", "TOTAL", total)
		return nil
	},
}

func init() {
	statsCmd.AddCommand(statsProjectCmd, statsAllCmd, statsDailyCmd, statsRangeCmd)
	rootCmd.AddCommand(statsCmd)
}
