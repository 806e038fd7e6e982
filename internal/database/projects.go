package database

import (
	"database/sql"
	"errors"
	"fmt"

	"tiempo/internal/model"
)

const projectColumns = `id, name, description, client_id, color, priority, status,
	estimated_hours, hours_per_day, hours_per_week, deadline, created_at, updated_at`

// ListProjects returns all projects: projects with deadlines first
// (soonest deadline ahead), then by priority descending, then by name.
func (s *Store) ListProjects() ([]*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listProjects()
}

// listProjects must be called with the mutex held.
func (s *Store) listProjects() ([]*model.Project, error) {
	rows, err := s.db.Query(
		"SELECT " + projectColumns + ` FROM projects
		 ORDER BY deadline IS NULL, deadline ASC, priority DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning projects: %w", err)
	}

	return projects, nil
}

// GetProject returns the project with the given id, or ErrNotFound.
func (s *Store) GetProject(id string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getProject(id)
}

// getProject must be called with the mutex held.
func (s *Store) getProject(id string) (*model.Project, error) {
	row := s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}

// InsertProject persists a new project record as given.
func (s *Store) InsertProject(p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, description, client_id, color, priority, status,
		 estimated_hours, hours_per_day, hours_per_week, deadline, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, nullString(p.Description), nullString(p.ClientID), nullString(p.Color),
		p.Priority, p.Status,
		nullFloat64(p.EstimatedHours), nullFloat64(p.HoursPerDay), nullFloat64(p.HoursPerWeek),
		formatTimePtr(p.Deadline), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// UpdateProject rewrites all mutable fields of the project (full replace)
// and returns the stored record re-read from the database.
// Returns ErrNotFound if the row no longer exists.
func (s *Store) UpdateProject(p *model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE projects SET name = ?, description = ?, client_id = ?, color = ?,
		 priority = ?, status = ?, estimated_hours = ?, hours_per_day = ?,
		 hours_per_week = ?, deadline = ?, updated_at = ? WHERE id = ?`,
		p.Name, nullString(p.Description), nullString(p.ClientID), nullString(p.Color),
		p.Priority, p.Status,
		nullFloat64(p.EstimatedHours), nullFloat64(p.HoursPerDay), nullFloat64(p.HoursPerWeek),
		formatTimePtr(p.Deadline), formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return s.getProject(p.ID)
}

// DeleteProject removes the project and, through ON DELETE CASCADE, every
// session that belongs to it.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(row scanner) (*model.Project, error) {
	var (
		p                            model.Project
		description, clientID, color sql.NullString
		estimated, perDay, perWeek   sql.NullFloat64
		deadline                     sql.NullString
		createdAt, updatedAt         string
	)

	err := row.Scan(&p.ID, &p.Name, &description, &clientID, &color, &p.Priority, &p.Status,
		&estimated, &perDay, &perWeek, &deadline, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Description = stringPtr(description)
	p.ClientID = stringPtr(clientID)
	p.Color = stringPtr(color)
	p.EstimatedHours = float64Ptr(estimated)
	p.HoursPerDay = float64Ptr(perDay)
	p.HoursPerWeek = float64Ptr(perWeek)

	if p.Deadline, err = parseTimePtr(deadline, "projects", "deadline", p.ID); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt, "projects", "created_at", p.ID); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "projects", "updated_at", p.ID); err != nil {
		return nil, err
	}

	return &p, nil
}
