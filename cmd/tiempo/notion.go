package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tiempo/internal/export"
	"tiempo/internal/model"
	"tiempo/internal/notion"
)

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Sync sessions to Notion",
}

var notionSyncCmd = &cobra.Command{
	Use:   "sync [START_DATE END_DATE]",
	Short: "Create one Notion page per stopped session in the range (defaults to the current month)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("NotionSync")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config().Notion
		token := os.Getenv("NOTION_TOKEN")
		if token == "" {
			token = cfg.Token
		}
		if token == "" || cfg.DatabaseID == "" {
			return fmt.Errorf("notion sync needs a token (NOTION_TOKEN or config) and a database_id in config")
		}

		startDate, endDate := export.CurrentMonthRange(time.Now())
		if len(args) == 2 {
			startDate, endDate = args[0], args[1]
		}

		sessions, err := a.Service().ListSessions()
		if err != nil {
			return err
		}
		projects, err := a.Service().ListProjects()
		if err != nil {
			return err
		}

		var inRange []*model.TimeSession
		for _, s := range sessions {
			date := s.StartTime.UTC().Format("2006-01-02")
			if date >= startDate && date <= endDate {
				inRange = append(inRange, s)
			}
		}

		payloads := notion.BuildPayloads(inRange, projects)
		if len(payloads) == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}

		client := notion.NewClient(token, cfg.DatabaseID, cfg.UserID)
		synced, err := client.SyncSessions(cmd.Context(), payloads)
		if err != nil {
			return fmt.Errorf("synced %d of %d sessions: %w", synced, len(payloads), err)
		}

		fmt.Printf("Synced %d sessions to Notion.\n", synced)
		return nil
	},
}

func init() {
	notionCmd.AddCommand(notionSyncCmd)
	rootCmd.AddCommand(notionCmd)
}
