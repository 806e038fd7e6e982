package testutil

import (
	"testing"

	"tiempo/internal/database"
	"tiempo/internal/database/migrations"
)

// NewTestStore creates a new in-memory SQLite store with the schema
// applied. The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) *database.Store {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	store := database.NewStoreFromDB(sqlDB)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
