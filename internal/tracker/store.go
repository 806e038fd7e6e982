package tracker

import (
	"time"

	"tiempo/internal/model"
)

// Store is the persistence surface the service depends on.
// database.Store is the SQLite implementation.
type Store interface {
	// Clients
	ListClients() ([]*model.Client, error)
	GetClient(id string) (*model.Client, error)
	InsertClient(c *model.Client) error
	UpdateClient(c *model.Client) (*model.Client, error)
	DeleteClient(id string) error

	// Projects
	ListProjects() ([]*model.Project, error)
	GetProject(id string) (*model.Project, error)
	InsertProject(p *model.Project) error
	UpdateProject(p *model.Project) (*model.Project, error)
	DeleteProject(id string) error

	// Sessions
	ListSessions() ([]*model.TimeSession, error)
	ListRunningSessions() ([]*model.TimeSession, error)
	ListProjectSessions(projectID string) ([]*model.TimeSession, error)
	GetSession(id string) (*model.TimeSession, error)
	InsertSession(ts *model.TimeSession) error
	StopSession(id string, end time.Time, durationSeconds int64, notes *string, updatedAt time.Time) (*model.TimeSession, error)
	AutoStopSession(id string, end time.Time, durationSeconds int64, marker string, updatedAt time.Time) (*model.TimeSession, error)
	UpdateSession(id, projectID string, start, end time.Time, durationSeconds int64, notes *string, updatedAt time.Time) (*model.TimeSession, error)
	UpdateSessionNotes(id string, notes *string, updatedAt time.Time) (*model.TimeSession, error)
	DeleteSession(id string) error

	// Derived aggregates
	ProjectStats(projectID string) (*model.ProjectStats, error)
	AllProjectsStats() ([]*model.ProjectStats, error)
	DailyStats(startDate, endDate string) ([]*model.DailyStats, error)
	DateRangeStats(startDate, endDate string) ([]model.ProjectTimeBreakdown, error)
}
