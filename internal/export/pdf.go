package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"tiempo/internal/model"
)

// notesCutoff is where a long notes line is truncated in the report.
const notesCutoff = 77

var (
	blue     = color.Color{Red: 41, Green: 128, Blue: 185}
	darkGray = color.Color{Red: 52, Green: 73, Blue: 94}
	green    = color.Color{Red: 39, Green: 174, Blue: 96}
)

// GeneratePDFReport writes an A4 report for the inclusive date range to
// path: title, range, grand total, then one section per day in descending
// date order with the day's sessions as bullet lines. maroto paginates
// when the page runs out.
func GeneratePDFReport(src Source, startDate, endDate, path string) error {
	dailyStats, err := src.DailyStats(startDate, endDate)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	allSessions, err := src.ListSessions()
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	projects, err := src.ListProjects()
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	// Only stopped sessions inside the range appear in the report.
	byDate := make(map[string][]*model.TimeSession)
	for _, s := range allSessions {
		date := s.StartTime.UTC().Format(dateLayout)
		if s.IsRunning || date < startDate || date > endDate {
			continue
		}
		byDate[date] = append(byDate[date], s)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var totalSeconds int64
	for _, day := range dailyStats {
		totalSeconds += int64(day.TotalHours * 3600.0)
	}

	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text("REPORTE DE TIEMPO", props.Text{
				Size:  22,
				Style: consts.Bold,
				Align: consts.Center,
				Color: blue,
			})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Período: %s hasta %s", startDate, endDate), props.Text{
				Size:  12,
				Align: consts.Center,
				Color: darkGray,
			})
		})
	})

	m.Row(10, func() {
		m.Col(6, func() {
			m.Text("TIEMPO TOTAL:", props.Text{
				Size:  13,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(FormatDuration(totalSeconds), props.Text{
				Size:  16,
				Style: consts.Bold,
				Align: consts.Right,
				Color: green,
			})
		})
	})

	m.Line(1.0)

	for _, date := range dates {
		sessions := byDate[date]

		var daySeconds int64
		for _, s := range sessions {
			if s.DurationSeconds != nil {
				daySeconds += *s.DurationSeconds
			}
		}

		m.Row(10, func() {
			m.Col(8, func() {
				m.Text(formatDayHeader(date), props.Text{
					Size:  13,
					Style: consts.Bold,
					Top:   2,
					Color: blue,
				})
			})
			m.Col(4, func() {
				m.Text(FormatDuration(daySeconds), props.Text{
					Size:  11,
					Style: consts.Bold,
					Align: consts.Right,
					Top:   3,
					Color: green,
				})
			})
		})
		m.Line(0.5)

		for _, s := range sessions {
			sessionRow(m, s, projectNames)
		}
	}

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// sessionRow renders one bullet line "HH:MM - HH:MM  name  duration" and,
// when present, a smaller truncated notes line below it.
func sessionRow(m pdf.Maroto, s *model.TimeSession, projectNames map[string]string) {
	name, ok := projectNames[s.ProjectID]
	if !ok {
		name = "Desconocido"
	}

	start := s.StartTime.UTC().Format("15:04")
	end := "-"
	if s.EndTime != nil {
		end = s.EndTime.UTC().Format("15:04")
	}

	var duration int64
	if s.DurationSeconds != nil {
		duration = *s.DurationSeconds
	}

	m.Row(6, func() {
		m.Col(3, func() {
			m.Text(fmt.Sprintf("• %s - %s", start, end), props.Text{
				Size:  10,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(name, props.Text{
				Size:  10,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(3, func() {
			m.Text(FormatDuration(duration), props.Text{
				Size:  10,
				Style: consts.Bold,
				Align: consts.Right,
				Color: green,
			})
		})
	})

	if s.Notes != nil && *s.Notes != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Notas: "+TruncateNotes(*s.Notes), props.Text{
					Size:  8,
					Color: darkGray,
					Left:  5,
				})
			})
		})
	}
}

// TruncateNotes cuts a notes line at the report cutoff and marks the cut.
func TruncateNotes(notes string) string {
	if len(notes) > notesCutoff+3 {
		return notes[:notesCutoff] + "..."
	}
	return notes
}

// FormatDuration renders whole seconds as "1h 2m 3s", dropping leading
// zero units.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// formatDayHeader expands YYYY-MM-DD into a long date, falling back to
// the raw value if it does not parse.
func formatDayHeader(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, 02 Jan 2006")
}
