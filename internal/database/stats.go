package database

import (
	"database/sql"
	"errors"
	"fmt"

	"tiempo/internal/model"
)

// ProjectStats sums the stopped sessions of one project. A project with no
// stopped sessions yields zero totals, not an error.
func (s *Store) ProjectStats(projectID string) (*model.ProjectStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats model.ProjectStats
	err := s.db.QueryRow(
		`SELECT
			project_id,
			COALESCE(SUM(duration_seconds), 0) AS total_seconds,
			COALESCE(SUM(duration_seconds) / 3600.0, 0) AS total_hours,
			COUNT(*) AS session_count
		 FROM time_sessions
		 WHERE project_id = ? AND is_running = 0
		 GROUP BY project_id`,
		projectID,
	).Scan(&stats.ProjectID, &stats.TotalSeconds, &stats.TotalHours, &stats.SessionCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.ProjectStats{ProjectID: projectID}, nil
		}
		return nil, fmt.Errorf("computing project stats: %w", err)
	}

	return &stats, nil
}

// AllProjectsStats aggregates stopped sessions per project, most-tracked
// project first.
func (s *Store) AllProjectsStats() ([]*model.ProjectStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT
			project_id,
			COALESCE(SUM(duration_seconds), 0) AS total_seconds,
			COALESCE(SUM(duration_seconds) / 3600.0, 0) AS total_hours,
			COUNT(*) AS session_count
		 FROM time_sessions
		 WHERE is_running = 0
		 GROUP BY project_id
		 ORDER BY total_seconds DESC`)
	if err != nil {
		return nil, fmt.Errorf("computing all projects stats: %w", err)
	}
	defer rows.Close()

	var all []*model.ProjectStats
	for rows.Next() {
		var stats model.ProjectStats
		if err := rows.Scan(&stats.ProjectID, &stats.TotalSeconds, &stats.TotalHours, &stats.SessionCount); err != nil {
			return nil, fmt.Errorf("scanning project stats: %w", err)
		}
		all = append(all, &stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning project stats: %w", err)
	}

	return all, nil
}

// DailyStats returns per-day totals and per-day project breakdowns for the
// inclusive date range (YYYY-MM-DD boundaries, which sort lexically).
// Days with no stopped sessions are omitted.
func (s *Store) DailyStats(startDate, endDate string) ([]*model.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT
			DATE(start_time) AS date,
			COALESCE(SUM(duration_seconds), 0) AS total_seconds,
			COALESCE(SUM(duration_seconds) / 3600.0, 0) AS total_hours
		 FROM time_sessions
		 WHERE is_running = 0
		 AND DATE(start_time) >= ?
		 AND DATE(start_time) <= ?
		 GROUP BY DATE(start_time)
		 ORDER BY date ASC`,
		startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("computing daily stats: %w", err)
	}
	defer rows.Close()

	var days []*model.DailyStats
	for rows.Next() {
		var day model.DailyStats
		if err := rows.Scan(&day.Date, &day.TotalSeconds, &day.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning daily stats: %w", err)
		}
		days = append(days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning daily stats: %w", err)
	}

	// The result set is closed before the per-day breakdown queries run;
	// the mutex is held across the whole computation.
	for _, day := range days {
		breakdown, err := s.projectBreakdown(day.Date, day.Date)
		if err != nil {
			return nil, err
		}
		day.ProjectBreakdown = breakdown
	}

	return days, nil
}

// DateRangeStats returns per-project totals across the whole inclusive
// date range, without per-day grouping, largest total first.
func (s *Store) DateRangeStats(startDate, endDate string) ([]model.ProjectTimeBreakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.projectBreakdown(startDate, endDate)
}

// projectBreakdown must be called with the mutex held. The left join to
// clients keeps projects without a client in the result.
func (s *Store) projectBreakdown(startDate, endDate string) ([]model.ProjectTimeBreakdown, error) {
	rows, err := s.db.Query(
		`SELECT
			ts.project_id,
			p.name AS project_name,
			c.name AS client_name,
			COALESCE(SUM(ts.duration_seconds), 0) AS total_seconds,
			COALESCE(SUM(ts.duration_seconds) / 3600.0, 0) AS total_hours
		 FROM time_sessions ts
		 JOIN projects p ON ts.project_id = p.id
		 LEFT JOIN clients c ON p.client_id = c.id
		 WHERE ts.is_running = 0
		 AND DATE(ts.start_time) >= ?
		 AND DATE(ts.start_time) <= ?
		 GROUP BY ts.project_id, p.name, c.name
		 ORDER BY total_seconds DESC`,
		startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("computing project breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []model.ProjectTimeBreakdown
	for rows.Next() {
		var (
			entry      model.ProjectTimeBreakdown
			clientName sql.NullString
		)
		if err := rows.Scan(&entry.ProjectID, &entry.ProjectName, &clientName,
			&entry.TotalSeconds, &entry.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning project breakdown: %w", err)
		}
		entry.ClientName = stringPtr(clientName)
		breakdown = append(breakdown, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning project breakdown: %w", err)
	}

	return breakdown, nil
}
