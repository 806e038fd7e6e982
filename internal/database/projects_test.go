package database_test

import (
	"errors"
	"testing"
	"time"

	"tiempo/internal/database"
	"tiempo/internal/model"
)

func TestStore_GetProject(t *testing.T) {
	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.GetProject("missing")
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("GetProject() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("round-trips all fields", func(t *testing.T) {
		store := newTestStore(t)
		seedClient(t, store, "c1", "Acme")

		estimated := 40.0
		perDay := 4.0
		perWeek := 20.0
		deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		p := &model.Project{
			ID:             "p1",
			Name:           "Website",
			Description:    strPtr("relaunch"),
			ClientID:       strPtr("c1"),
			Color:          strPtr("#00ff00"),
			Priority:       3,
			Status:         model.StatusActive,
			EstimatedHours: &estimated,
			HoursPerDay:    &perDay,
			HoursPerWeek:   &perWeek,
			Deadline:       &deadline,
			CreatedAt:      baseTime,
			UpdatedAt:      baseTime,
		}
		if err := store.InsertProject(p); err != nil {
			t.Fatalf("InsertProject() error = %v", err)
		}

		got, err := store.GetProject("p1")
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Name != "Website" {
			t.Errorf("Name = %v, want Website", got.Name)
		}
		if got.ClientID == nil || *got.ClientID != "c1" {
			t.Errorf("ClientID = %v, want c1", got.ClientID)
		}
		if got.Priority != 3 {
			t.Errorf("Priority = %v, want 3", got.Priority)
		}
		if got.EstimatedHours == nil || *got.EstimatedHours != 40.0 {
			t.Errorf("EstimatedHours = %v, want 40", got.EstimatedHours)
		}
		if got.Deadline == nil || !got.Deadline.Equal(deadline) {
			t.Errorf("Deadline = %v, want %v", got.Deadline, deadline)
		}
	})

	t.Run("absent optionals come back nil", func(t *testing.T) {
		store := newTestStore(t)
		seedProject(t, store, "p1", "Website", nil)

		got, err := store.GetProject("p1")
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Description != nil || got.ClientID != nil || got.Color != nil {
			t.Errorf("optionals = (%v, %v, %v), want all nil", got.Description, got.ClientID, got.Color)
		}
		if got.EstimatedHours != nil || got.HoursPerDay != nil || got.HoursPerWeek != nil || got.Deadline != nil {
			t.Error("numeric optionals and deadline should be nil")
		}
	})
}

func TestStore_ListProjects(t *testing.T) {
	t.Run("deadlined projects come first, soonest ahead", func(t *testing.T) {
		store := newTestStore(t)

		far := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		near := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		insert := func(id, name string, deadline *time.Time, priority int) {
			p := &model.Project{
				ID: id, Name: name, Priority: priority, Status: model.StatusActive,
				Deadline: deadline, CreatedAt: baseTime, UpdatedAt: baseTime,
			}
			if err := store.InsertProject(p); err != nil {
				t.Fatalf("InsertProject(%s) error = %v", id, err)
			}
		}

		insert("p1", "No deadline low", nil, 1)
		insert("p2", "Far deadline", &far, 2)
		insert("p3", "Near deadline", &near, 1)
		insert("p4", "No deadline high", nil, 4)

		projects, err := store.ListProjects()
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}

		want := []string{"p3", "p2", "p4", "p1"}
		if len(projects) != len(want) {
			t.Fatalf("ListProjects() returned %d projects, want %d", len(projects), len(want))
		}
		for i, id := range want {
			if projects[i].ID != id {
				t.Errorf("projects[%d].ID = %v, want %v", i, projects[i].ID, id)
			}
		}
	})

	t.Run("same deadline state orders by priority then name", func(t *testing.T) {
		store := newTestStore(t)

		insert := func(id, name string, priority int) {
			p := &model.Project{
				ID: id, Name: name, Priority: priority, Status: model.StatusActive,
				CreatedAt: baseTime, UpdatedAt: baseTime,
			}
			if err := store.InsertProject(p); err != nil {
				t.Fatalf("InsertProject(%s) error = %v", id, err)
			}
		}

		insert("p1", "Beta", 2)
		insert("p2", "Alpha", 2)
		insert("p3", "Gamma", 4)

		projects, err := store.ListProjects()
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}

		want := []string{"p3", "p2", "p1"}
		for i, id := range want {
			if projects[i].ID != id {
				t.Errorf("projects[%d].ID = %v, want %v", i, projects[i].ID, id)
			}
		}
	})
}

func TestStore_UpdateProject(t *testing.T) {
	t.Run("replaces all mutable fields", func(t *testing.T) {
		store := newTestStore(t)
		seedProject(t, store, "p1", "Website", nil)

		updated, err := store.UpdateProject(&model.Project{
			ID:        "p1",
			Name:      "Website v2",
			Priority:  4,
			Status:    model.StatusPaused,
			UpdatedAt: baseTime.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("UpdateProject() error = %v", err)
		}

		if updated.Name != "Website v2" {
			t.Errorf("Name = %v, want Website v2", updated.Name)
		}
		if updated.Priority != 4 {
			t.Errorf("Priority = %v, want 4", updated.Priority)
		}
		if updated.Status != model.StatusPaused {
			t.Errorf("Status = %v, want paused", updated.Status)
		}
		if !updated.CreatedAt.Equal(baseTime) {
			t.Errorf("CreatedAt = %v, want %v (must not change)", updated.CreatedAt, baseTime)
		}
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.UpdateProject(&model.Project{
			ID: "missing", Name: "X", Priority: 2, Status: model.StatusActive, UpdatedAt: baseTime,
		})
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("UpdateProject() error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_DeleteProject(t *testing.T) {
	t.Run("cascades to the project's sessions", func(t *testing.T) {
		store := newTestStore(t)
		seedProject(t, store, "p1", "Website", nil)
		seedProject(t, store, "p2", "API", nil)
		seedStoppedSession(t, store, "s1", "p1", baseTime, 3600)
		seedStoppedSession(t, store, "s2", "p2", baseTime, 1800)

		if err := store.DeleteProject("p1"); err != nil {
			t.Fatalf("DeleteProject() error = %v", err)
		}

		if _, err := store.GetSession("s1"); !errors.Is(err, database.ErrNotFound) {
			t.Errorf("GetSession(s1) error = %v, want ErrNotFound", err)
		}
		// Sessions of other projects survive.
		if _, err := store.GetSession("s2"); err != nil {
			t.Errorf("GetSession(s2) error = %v, want nil", err)
		}
	})

	t.Run("deleting a missing project is not an error", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.DeleteProject("missing"); err != nil {
			t.Errorf("DeleteProject() error = %v, want nil", err)
		}
	})
}
