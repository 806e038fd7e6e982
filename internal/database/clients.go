package database

import (
	"database/sql"
	"errors"
	"fmt"

	"tiempo/internal/model"
)

const clientColumns = "id, name, description, color, created_at, updated_at"

// ListClients returns all clients ordered by name.
func (s *Store) ListClients() ([]*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT " + clientColumns + " FROM clients ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning clients: %w", err)
	}

	return clients, nil
}

// GetClient returns the client with the given id, or ErrNotFound.
func (s *Store) GetClient(id string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getClient(id)
}

// getClient must be called with the mutex held.
func (s *Store) getClient(id string) (*model.Client, error) {
	row := s.db.QueryRow("SELECT "+clientColumns+" FROM clients WHERE id = ?", id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return client, nil
}

// InsertClient persists a new client record as given.
func (s *Store) InsertClient(c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO clients (id, name, description, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullString(c.Description), nullString(c.Color),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

// UpdateClient rewrites all mutable fields of the client (full replace,
// not patch) and returns the stored record re-read from the database.
// Returns ErrNotFound if the row no longer exists.
func (s *Store) UpdateClient(c *model.Client) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE clients SET name = ?, description = ?, color = ?, updated_at = ? WHERE id = ?",
		c.Name, nullString(c.Description), nullString(c.Color), formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	return s.getClient(c.ID)
}

// DeleteClient removes the client. Referencing projects keep existing with
// their client_id cleared (ON DELETE SET NULL).
func (s *Store) DeleteClient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM clients WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*model.Client, error) {
	var (
		c                    model.Client
		description, color   sql.NullString
		createdAt, updatedAt string
	)

	if err := row.Scan(&c.ID, &c.Name, &description, &color, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	c.Description = stringPtr(description)
	c.Color = stringPtr(color)

	var err error
	if c.CreatedAt, err = parseTime(createdAt, "clients", "created_at", c.ID); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt, "clients", "updated_at", c.ID); err != nil {
		return nil, err
	}

	return &c, nil
}
