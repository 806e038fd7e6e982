// Package export produces the user-facing artifacts: the JSON daily
// backup and the PDF time report. Both are read-only consumers of the
// tracker service.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tiempo/internal/model"
)

// Source is the read-only slice of the tracker service the exporters use.
type Source interface {
	ListSessions() ([]*model.TimeSession, error)
	ListProjects() ([]*model.Project, error)
	DailyStats(startDate, endDate string) ([]*model.DailyStats, error)
}

// dateLayout is the YYYY-MM-DD form used for day boundaries everywhere.
const dateLayout = "2006-01-02"

// DailyBackup bundles one day's sessions with its stats and the full
// project list, so the file is restorable on its own.
type DailyBackup struct {
	Date     string               `json:"date"`
	Sessions []*model.TimeSession `json:"sessions"`
	Stats    []*model.DailyStats  `json:"stats"`
	Projects []*model.Project     `json:"projects"`
}

// BuildDailyBackup assembles the backup for one date (YYYY-MM-DD).
func BuildDailyBackup(src Source, date string) (*DailyBackup, error) {
	allSessions, err := src.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	projects, err := src.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	stats, err := src.DailyStats(date, date)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}

	daySessions := []*model.TimeSession{}
	for _, s := range allSessions {
		if s.StartTime.UTC().Format(dateLayout) == date {
			daySessions = append(daySessions, s)
		}
	}

	return &DailyBackup{
		Date:     date,
		Sessions: daySessions,
		Stats:    stats,
		Projects: projects,
	}, nil
}

// ExportDailyBackup renders the backup for one date as indented JSON.
func ExportDailyBackup(src Source, date string) ([]byte, error) {
	backup, err := BuildDailyBackup(src, date)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// SaveDailyBackup writes the JSON backup for one date to path.
func SaveDailyBackup(src Source, date, path string) error {
	data, err := ExportDailyBackup(src, date)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// CurrentMonthRange returns the first and last day of now's month as
// YYYY-MM-DD strings, the default range for reports.
func CurrentMonthRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
