package model

import "time"

// Project status vocabulary. Anything else is rejected at the service
// boundary before it reaches the database.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Project priority bounds: 1 = low, 2 = medium, 3 = high, 4 = urgent.
const (
	PriorityMin = 1
	PriorityMax = 4
)

// Client represents a billable client. Deleting a client clears the
// client reference on its projects but leaves the projects in place.
type Client struct {
	ID          string    `json:"id"` // UUID
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"` // hex display color
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project represents a unit of trackable work. The client reference is
// weak (nullable); sessions are owned and cascade-deleted with the project.
type Project struct {
	ID             string     `json:"id"` // UUID
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	ClientID       *string    `json:"client_id"`
	Color          *string    `json:"color"`
	Priority       int        `json:"priority"`
	Status         string     `json:"status"`
	EstimatedHours *float64   `json:"estimated_hours"`
	HoursPerDay    *float64   `json:"hours_per_day"`
	HoursPerWeek   *float64   `json:"hours_per_week"`
	Deadline       *time.Time `json:"deadline"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TimeSession is one contiguous timed interval of work on a project.
// Invariant: a session is running iff EndTime is nil, and a stopped
// session always carries both EndTime and DurationSeconds.
type TimeSession struct {
	ID              string     `json:"id"` // UUID
	ProjectID       string     `json:"project_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds"`
	Notes           *string    `json:"notes"`
	IsRunning       bool       `json:"is_running"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProjectStats aggregates the stopped sessions of one project.
// Derived view, never persisted.
type ProjectStats struct {
	ProjectID    string  `json:"project_id"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
	SessionCount int     `json:"session_count"`
}

// DailyStats aggregates the stopped sessions of one calendar day.
// Days without sessions are omitted, never zero-filled.
type DailyStats struct {
	Date             string                 `json:"date"` // YYYY-MM-DD
	TotalSeconds     int64                  `json:"total_seconds"`
	TotalHours       float64                `json:"total_hours"`
	ProjectBreakdown []ProjectTimeBreakdown `json:"project_breakdown"`
}

// ProjectTimeBreakdown is a per-project slice of an aggregate. The client
// name comes through a left join, so projects without a client still appear.
type ProjectTimeBreakdown struct {
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name"`
	ClientName   *string `json:"client_name"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
}
