package database_test

import (
	"errors"
	"testing"
	"time"

	"tiempo/internal/database"
	"tiempo/internal/model"
)

func TestStore_GetClient(t *testing.T) {
	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.GetClient("missing")
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("GetClient() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("round-trips all fields", func(t *testing.T) {
		store := newTestStore(t)

		c := &model.Client{
			ID:          "c1",
			Name:        "Acme",
			Description: strPtr("main account"),
			Color:       strPtr("#ff0000"),
			CreatedAt:   baseTime,
			UpdatedAt:   baseTime,
		}
		if err := store.InsertClient(c); err != nil {
			t.Fatalf("InsertClient() error = %v", err)
		}

		got, err := store.GetClient("c1")
		if err != nil {
			t.Fatalf("GetClient() error = %v", err)
		}
		if got.Name != "Acme" {
			t.Errorf("Name = %v, want Acme", got.Name)
		}
		if got.Description == nil || *got.Description != "main account" {
			t.Errorf("Description = %v, want main account", got.Description)
		}
		if got.Color == nil || *got.Color != "#ff0000" {
			t.Errorf("Color = %v, want #ff0000", got.Color)
		}
		if !got.CreatedAt.Equal(baseTime) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, baseTime)
		}
	})

	t.Run("absent optionals come back nil", func(t *testing.T) {
		store := newTestStore(t)
		seedClient(t, store, "c1", "Acme")

		got, err := store.GetClient("c1")
		if err != nil {
			t.Fatalf("GetClient() error = %v", err)
		}
		if got.Description != nil {
			t.Errorf("Description = %v, want nil", got.Description)
		}
		if got.Color != nil {
			t.Errorf("Color = %v, want nil", got.Color)
		}
	})
}

func TestStore_ListClients(t *testing.T) {
	t.Run("orders by name ascending", func(t *testing.T) {
		store := newTestStore(t)
		seedClient(t, store, "c1", "Zeta")
		seedClient(t, store, "c2", "Acme")
		seedClient(t, store, "c3", "Mango")

		clients, err := store.ListClients()
		if err != nil {
			t.Fatalf("ListClients() error = %v", err)
		}

		want := []string{"Acme", "Mango", "Zeta"}
		if len(clients) != len(want) {
			t.Fatalf("ListClients() returned %d clients, want %d", len(clients), len(want))
		}
		for i, name := range want {
			if clients[i].Name != name {
				t.Errorf("clients[%d].Name = %v, want %v", i, clients[i].Name, name)
			}
		}
	})

	t.Run("empty database yields no clients", func(t *testing.T) {
		store := newTestStore(t)

		clients, err := store.ListClients()
		if err != nil {
			t.Fatalf("ListClients() error = %v", err)
		}
		if len(clients) != 0 {
			t.Errorf("ListClients() returned %d clients, want 0", len(clients))
		}
	})
}

func TestStore_UpdateClient(t *testing.T) {
	t.Run("replaces all mutable fields", func(t *testing.T) {
		store := newTestStore(t)

		c := &model.Client{
			ID:          "c1",
			Name:        "Acme",
			Description: strPtr("old"),
			Color:       strPtr("#ff0000"),
			CreatedAt:   baseTime,
			UpdatedAt:   baseTime,
		}
		if err := store.InsertClient(c); err != nil {
			t.Fatalf("InsertClient() error = %v", err)
		}

		updated, err := store.UpdateClient(&model.Client{
			ID:        "c1",
			Name:      "Acme Corp",
			UpdatedAt: baseTime.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("UpdateClient() error = %v", err)
		}

		if updated.Name != "Acme Corp" {
			t.Errorf("Name = %v, want Acme Corp", updated.Name)
		}
		// Full replace: unset optionals are cleared, not preserved.
		if updated.Description != nil {
			t.Errorf("Description = %v, want nil", updated.Description)
		}
		if updated.Color != nil {
			t.Errorf("Color = %v, want nil", updated.Color)
		}
		if !updated.CreatedAt.Equal(baseTime) {
			t.Errorf("CreatedAt = %v, want %v (must not change)", updated.CreatedAt, baseTime)
		}
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.UpdateClient(&model.Client{ID: "missing", Name: "X", UpdatedAt: baseTime})
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("UpdateClient() error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_DeleteClient(t *testing.T) {
	t.Run("removes the client", func(t *testing.T) {
		store := newTestStore(t)
		seedClient(t, store, "c1", "Acme")

		if err := store.DeleteClient("c1"); err != nil {
			t.Fatalf("DeleteClient() error = %v", err)
		}

		_, err := store.GetClient("c1")
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("GetClient() after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("clears the client reference on its projects", func(t *testing.T) {
		store := newTestStore(t)
		seedClient(t, store, "c1", "Acme")
		seedProject(t, store, "p1", "Website", strPtr("c1"))

		if err := store.DeleteClient("c1"); err != nil {
			t.Fatalf("DeleteClient() error = %v", err)
		}

		p, err := store.GetProject("p1")
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if p.ClientID != nil {
			t.Errorf("ClientID = %v, want nil after client delete", *p.ClientID)
		}
	})

	t.Run("deleting a missing client is not an error", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.DeleteClient("missing"); err != nil {
			t.Errorf("DeleteClient() error = %v, want nil", err)
		}
	})
}
