// Package notion posts stopped sessions to a Notion database, one page
// per session. It is the only component that touches the network, and it
// never runs while the store lock is held: payloads are built from data
// read beforehand.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"tiempo/internal/model"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// SessionPayload is the per-session slice of data shipped to Notion.
type SessionPayload struct {
	ProjectName     string  `json:"project_name"`
	Date            string  `json:"date"` // YYYY-MM-DD
	DurationMinutes float64 `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

// Client talks to the Notion pages API.
type Client struct {
	// BaseURL can be overridden in tests; defaults to the public API.
	BaseURL    string
	HTTPClient *http.Client

	token      string
	databaseID string
	userID     string // optional "Persona" people property
}

// NewClient creates a Client with the given credentials. userID may be
// empty, in which case no person is attached to the created pages.
func NewClient(token, databaseID, userID string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		databaseID: databaseID,
		userID:     userID,
	}
}

// BuildPayloads converts stopped sessions into payloads, resolving each
// session's project name. Running sessions are skipped; sessions whose
// project is unknown are labeled as such rather than dropped.
func BuildPayloads(sessions []*model.TimeSession, projects []*model.Project) []SessionPayload {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	payloads := []SessionPayload{}
	for _, s := range sessions {
		if s.IsRunning || s.DurationSeconds == nil {
			continue
		}
		name, ok := names[s.ProjectID]
		if !ok {
			name = "Desconocido"
		}
		payloads = append(payloads, SessionPayload{
			ProjectName:     name,
			Date:            s.StartTime.UTC().Format("2006-01-02"),
			DurationMinutes: float64(*s.DurationSeconds) / 60.0,
			Notes:           s.Notes,
		})
	}
	return payloads
}

// SyncSessions posts one page per payload. It stops at the first failure
// and returns how many pages were created before it, together with the
// failing status and response body.
func (c *Client) SyncSessions(ctx context.Context, payloads []SessionPayload) (int, error) {
	synced := 0
	for _, payload := range payloads {
		if err := c.createPage(ctx, payload); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

func (c *Client) createPage(ctx context.Context, payload SessionPayload) error {
	// Property names match the Notion database the desktop app writes to.
	durationRounded := math.Round(payload.DurationMinutes*100) / 100

	properties := map[string]any{
		"Nombre": map[string]any{
			"title": []any{map[string]any{"text": map[string]any{"content": payload.ProjectName}}},
		},
		"Proyecto": map[string]any{
			"select": map[string]any{"name": payload.ProjectName},
		},
		"Fecha": map[string]any{
			"date": map[string]any{"start": payload.Date},
		},
		"Duration": map[string]any{
			"number": durationRounded,
		},
	}

	if payload.Notes != nil && *payload.Notes != "" {
		properties["Comentarios"] = map[string]any{
			"rich_text": []any{map[string]any{"text": map[string]any{"content": *payload.Notes}}},
		}
	}

	if c.userID != "" {
		properties["Persona"] = map[string]any{
			"people": []any{map[string]any{"object": "user", "id": c.userID}},
		}
	}

	body, err := json.Marshal(map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": properties,
	})
	if err != nil {
		return fmt.Errorf("encoding page request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building page request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion API error (%s): %s", resp.Status, string(respBody))
	}

	return nil
}
