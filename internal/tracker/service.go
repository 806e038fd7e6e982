package tracker

import (
	"fmt"
	"time"

	"tiempo/internal/model"
)

// AutoStopMarker is appended to a session's notes when the session is
// stopped automatically (quit or detected screen lock) rather than by the
// user. The wording matches what existing databases already contain.
const AutoStopMarker = " [Auto-pausado]"

// Service is the orchestration layer between the boundary surfaces (CLI,
// tray, export, sync) and the store. It owns ID and timestamp assignment
// and validates the closed vocabularies before anything is written.
type Service struct {
	store  Store
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:  store,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// ClientFields carries the mutable fields of a client.
type ClientFields struct {
	Name        string
	Description *string
	Color       *string
}

// ProjectFields carries the mutable fields of a project.
type ProjectFields struct {
	Name           string
	Description    *string
	ClientID       *string
	Color          *string
	Priority       int
	Status         string
	EstimatedHours *float64
	HoursPerDay    *float64
	HoursPerWeek   *float64
	Deadline       *time.Time
}

func validateProjectFields(f ProjectFields) error {
	if f.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if f.Priority < model.PriorityMin || f.Priority > model.PriorityMax {
		return fmt.Errorf("priority %d out of range %d-%d", f.Priority, model.PriorityMin, model.PriorityMax)
	}
	switch f.Status {
	case model.StatusActive, model.StatusPaused, model.StatusCompleted, model.StatusArchived:
		return nil
	default:
		return fmt.Errorf("unknown project status %q", f.Status)
	}
}

// Clients

func (s *Service) ListClients() ([]*model.Client, error) {
	return s.store.ListClients()
}

func (s *Service) GetClient(id string) (*model.Client, error) {
	return s.store.GetClient(id)
}

// CreateClient creates a client with a fresh id and current timestamps.
func (s *Service) CreateClient(f ClientFields) (*model.Client, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	now := s.clock.Now()
	client := &model.Client{
		ID:          s.idgen.New(),
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.InsertClient(client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.logger.Info("client created", "id", client.ID, "name", client.Name)
	return client, nil
}

// UpdateClient rewrites all mutable fields and returns the stored record.
func (s *Service) UpdateClient(id string, f ClientFields) (*model.Client, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	updated, err := s.store.UpdateClient(&model.Client{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		UpdatedAt:   s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}
	return updated, nil
}

// DeleteClient removes the client. Its projects survive with their client
// reference cleared.
func (s *Service) DeleteClient(id string) error {
	if err := s.store.DeleteClient(id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	s.logger.Info("client deleted", "id", id)
	return nil
}

// Projects

func (s *Service) ListProjects() ([]*model.Project, error) {
	return s.store.ListProjects()
}

func (s *Service) GetProject(id string) (*model.Project, error) {
	return s.store.GetProject(id)
}

// CreateProject creates a project with a fresh id and current timestamps.
// Status and priority are validated against their closed sets first.
func (s *Service) CreateProject(f ProjectFields) (*model.Project, error) {
	if err := validateProjectFields(f); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	project := &model.Project{
		ID:             s.idgen.New(),
		Name:           f.Name,
		Description:    f.Description,
		ClientID:       f.ClientID,
		Color:          f.Color,
		Priority:       f.Priority,
		Status:         f.Status,
		EstimatedHours: f.EstimatedHours,
		HoursPerDay:    f.HoursPerDay,
		HoursPerWeek:   f.HoursPerWeek,
		Deadline:       f.Deadline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.InsertProject(project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "id", project.ID, "name", project.Name)
	return project, nil
}

// UpdateProject rewrites all mutable fields and returns the stored record.
func (s *Service) UpdateProject(id string, f ProjectFields) (*model.Project, error) {
	if err := validateProjectFields(f); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProject(&model.Project{
		ID:             id,
		Name:           f.Name,
		Description:    f.Description,
		ClientID:       f.ClientID,
		Color:          f.Color,
		Priority:       f.Priority,
		Status:         f.Status,
		EstimatedHours: f.EstimatedHours,
		HoursPerDay:    f.HoursPerDay,
		HoursPerWeek:   f.HoursPerWeek,
		Deadline:       f.Deadline,
		UpdatedAt:      s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return updated, nil
}

// DeleteProject removes the project and all of its sessions.
func (s *Service) DeleteProject(id string) error {
	if err := s.store.DeleteProject(id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Info("project deleted", "id", id)
	return nil
}

// Sessions

func (s *Service) ListSessions() ([]*model.TimeSession, error) {
	return s.store.ListSessions()
}

func (s *Service) ListRunningSessions() ([]*model.TimeSession, error) {
	return s.store.ListRunningSessions()
}

func (s *Service) ListProjectSessions(projectID string) ([]*model.TimeSession, error) {
	return s.store.ListProjectSessions(projectID)
}

func (s *Service) GetSession(id string) (*model.TimeSession, error) {
	return s.store.GetSession(id)
}

// StartSession creates a new running session on the project, starting now.
// Nothing prevents several sessions running at once, on the same project
// or on different ones; the layer above decides whether that is sensible.
func (s *Service) StartSession(projectID string) (*model.TimeSession, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	now := s.clock.Now()
	session := &model.TimeSession{
		ID:        s.idgen.New(),
		ProjectID: projectID,
		StartTime: now,
		IsRunning: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.InsertSession(session); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	s.logger.Info("session started", "id", session.ID, "project", projectID)
	return session, nil
}

// StopSession stops a running session now. The duration is the whole
// seconds elapsed since the recorded start; it is not clamped if the
// clock has moved backwards.
func (s *Service) StopSession(sessionID string, notes *string) (*model.TimeSession, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("stopping session: %w", err)
	}

	now := s.clock.Now()
	duration := int64(now.Sub(session.StartTime).Seconds())

	stopped, err := s.store.StopSession(sessionID, now, duration, notes, now)
	if err != nil {
		return nil, fmt.Errorf("stopping session: %w", err)
	}

	s.logger.Info("session stopped", "id", sessionID, "duration_seconds", duration)
	return stopped, nil
}

// UpdateSession rewrites a session's project, time bounds and notes.
// Rejected before any write if the end precedes the start.
func (s *Service) UpdateSession(sessionID, projectID string, start, end time.Time, notes *string) (*model.TimeSession, error) {
	duration := int64(end.Sub(start).Seconds())
	if duration < 0 {
		return nil, fmt.Errorf("end time must be after start time")
	}

	updated, err := s.store.UpdateSession(sessionID, projectID, start, end, duration, notes, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}
	return updated, nil
}

// UpdateSessionNotes rewrites only the notes of a session.
func (s *Service) UpdateSessionNotes(sessionID string, notes *string) (*model.TimeSession, error) {
	updated, err := s.store.UpdateSessionNotes(sessionID, notes, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("updating session notes: %w", err)
	}
	return updated, nil
}

// StopAllRunning stops every running session using a shared end time and
// appends the auto-stop marker to each one's notes. Sessions are stopped
// one statement at a time: a failure does not roll back sessions already
// stopped, and the first error is returned after the rest of the batch
// has been attempted.
func (s *Service) StopAllRunning() ([]*model.TimeSession, error) {
	running, err := s.store.ListRunningSessions()
	if err != nil {
		return nil, fmt.Errorf("listing running sessions: %w", err)
	}

	now := s.clock.Now()

	var stopped []*model.TimeSession
	var firstErr error
	for _, session := range running {
		duration := int64(now.Sub(session.StartTime).Seconds())

		result, err := s.store.AutoStopSession(session.ID, now, duration, AutoStopMarker, now)
		if err != nil {
			s.logger.Error("auto-stop failed", "id", session.ID, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("auto-stopping session %s: %w", session.ID, err)
			}
			continue
		}
		stopped = append(stopped, result)
	}

	if len(stopped) > 0 {
		s.logger.Info("running sessions auto-stopped", "count", len(stopped))
	}
	return stopped, firstErr
}

// DeleteSession removes the session unconditionally.
func (s *Service) DeleteSession(sessionID string) error {
	if err := s.store.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	s.logger.Info("session deleted", "id", sessionID)
	return nil
}

// Statistics

func (s *Service) ProjectStats(projectID string) (*model.ProjectStats, error) {
	return s.store.ProjectStats(projectID)
}

func (s *Service) AllProjectsStats() ([]*model.ProjectStats, error) {
	return s.store.AllProjectsStats()
}

func (s *Service) DailyStats(startDate, endDate string) ([]*model.DailyStats, error) {
	return s.store.DailyStats(startDate, endDate)
}

func (s *Service) DateRangeStats(startDate, endDate string) ([]model.ProjectTimeBreakdown, error) {
	return s.store.DateRangeStats(startDate, endDate)
}
