package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tiempo/internal/model"
)

const sessionColumns = `id, project_id, start_time, end_time, duration_seconds,
	notes, is_running, created_at, updated_at`

// ListSessions returns all sessions, most recently started first.
func (s *Store) ListSessions() ([]*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.querySessions(
		"SELECT " + sessionColumns + " FROM time_sessions ORDER BY start_time DESC")
}

// ListRunningSessions returns all sessions that have not been stopped yet.
func (s *Store) ListRunningSessions() ([]*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.querySessions(
		"SELECT " + sessionColumns + " FROM time_sessions WHERE is_running = 1 ORDER BY start_time DESC")
}

// ListProjectSessions returns all sessions of one project, most recent first.
func (s *Store) ListProjectSessions(projectID string) ([]*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.querySessions(
		"SELECT "+sessionColumns+" FROM time_sessions WHERE project_id = ? ORDER BY start_time DESC",
		projectID)
}

// querySessions must be called with the mutex held.
func (s *Store) querySessions(query string, args ...any) ([]*model.TimeSession, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.TimeSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning sessions: %w", err)
	}

	return sessions, nil
}

// GetSession returns the session with the given id, or ErrNotFound.
func (s *Store) GetSession(id string) (*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getSession(id)
}

// getSession must be called with the mutex held.
func (s *Store) getSession(id string) (*model.TimeSession, error) {
	row := s.db.QueryRow("SELECT "+sessionColumns+" FROM time_sessions WHERE id = ?", id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return session, nil
}

// InsertSession persists a new session record as given.
func (s *Store) InsertSession(ts *model.TimeSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	running := 0
	if ts.IsRunning {
		running = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO time_sessions (id, project_id, start_time, end_time, duration_seconds,
		 notes, is_running, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.ID, ts.ProjectID, formatTime(ts.StartTime), formatTimePtr(ts.EndTime),
		nullInt64(ts.DurationSeconds), nullString(ts.Notes), running,
		formatTime(ts.CreatedAt), formatTime(ts.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// StopSession transitions a session to stopped, recording its end time and
// computed duration, and returns the stored record.
func (s *Store) StopSession(id string, end time.Time, durationSeconds int64, notes *string, updatedAt time.Time) (*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE time_sessions SET end_time = ?, duration_seconds = ?, notes = ?,
		 is_running = 0, updated_at = ? WHERE id = ?`,
		formatTime(end), durationSeconds, nullString(notes), formatTime(updatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("stopping session: %w", err)
	}

	return s.getSession(id)
}

// AutoStopSession stops a running session on behalf of a quit or
// screen-lock trigger, appending marker to any existing notes.
func (s *Store) AutoStopSession(id string, end time.Time, durationSeconds int64, marker string, updatedAt time.Time) (*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE time_sessions SET end_time = ?, duration_seconds = ?, is_running = 0,
		 notes = COALESCE(notes, '') || ?, updated_at = ? WHERE id = ?`,
		formatTime(end), durationSeconds, marker, formatTime(updatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("auto-stopping session: %w", err)
	}

	return s.getSession(id)
}

// UpdateSession rewrites a session's project, time bounds, duration and
// notes, and returns the stored record. Returns ErrNotFound if the row no
// longer exists. Time-order validation happens at the service boundary.
func (s *Store) UpdateSession(id, projectID string, start, end time.Time, durationSeconds int64, notes *string, updatedAt time.Time) (*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE time_sessions SET project_id = ?, start_time = ?, end_time = ?,
		 duration_seconds = ?, notes = ?, updated_at = ? WHERE id = ?`,
		projectID, formatTime(start), formatTime(end), durationSeconds,
		nullString(notes), formatTime(updatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}

	return s.getSession(id)
}

// UpdateSessionNotes rewrites only the notes of a session and returns the
// stored record.
func (s *Store) UpdateSessionNotes(id string, notes *string, updatedAt time.Time) (*model.TimeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE time_sessions SET notes = ?, updated_at = ? WHERE id = ?",
		nullString(notes), formatTime(updatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating session notes: %w", err)
	}

	return s.getSession(id)
}

// DeleteSession removes the session unconditionally.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM time_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func scanSession(row scanner) (*model.TimeSession, error) {
	var (
		ts                   model.TimeSession
		endTime, notes       sql.NullString
		duration             sql.NullInt64
		running              int
		startTime            string
		createdAt, updatedAt string
	)

	err := row.Scan(&ts.ID, &ts.ProjectID, &startTime, &endTime, &duration,
		&notes, &running, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	ts.DurationSeconds = int64Ptr(duration)
	ts.Notes = stringPtr(notes)
	ts.IsRunning = running == 1

	if ts.StartTime, err = parseTime(startTime, "time_sessions", "start_time", ts.ID); err != nil {
		return nil, err
	}
	if ts.EndTime, err = parseTimePtr(endTime, "time_sessions", "end_time", ts.ID); err != nil {
		return nil, err
	}
	if ts.CreatedAt, err = parseTime(createdAt, "time_sessions", "created_at", ts.ID); err != nil {
		return nil, err
	}
	if ts.UpdatedAt, err = parseTime(updatedAt, "time_sessions", "updated_at", ts.ID); err != nil {
		return nil, err
	}

	return &ts, nil
}
