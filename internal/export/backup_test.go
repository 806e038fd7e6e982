package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiempo/internal/model"
)

// stubSource is a canned Source for exporter tests.
type stubSource struct {
	sessions []*model.TimeSession
	projects []*model.Project
	stats    []*model.DailyStats
	err      error
}

func (s *stubSource) ListSessions() ([]*model.TimeSession, error) { return s.sessions, s.err }
func (s *stubSource) ListProjects() ([]*model.Project, error)     { return s.projects, s.err }
func (s *stubSource) DailyStats(startDate, endDate string) ([]*model.DailyStats, error) {
	return s.stats, s.err
}

func stoppedSession(id, projectID string, start time.Time, durationSeconds int64) *model.TimeSession {
	end := start.Add(time.Duration(durationSeconds) * time.Second)
	return &model.TimeSession{
		ID:              id,
		ProjectID:       projectID,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &durationSeconds,
		CreatedAt:       start,
		UpdatedAt:       end,
	}
}

func TestBuildDailyBackup(t *testing.T) {
	day := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	otherDay := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	t.Run("keeps only sessions that started on the date", func(t *testing.T) {
		src := &stubSource{
			sessions: []*model.TimeSession{
				stoppedSession("s1", "p1", day, 3600),
				stoppedSession("s2", "p1", otherDay, 1800),
			},
			projects: []*model.Project{{ID: "p1", Name: "Website"}},
		}

		backup, err := BuildDailyBackup(src, "2024-01-15")
		require.NoError(t, err)

		assert.Equal(t, "2024-01-15", backup.Date)
		require.Len(t, backup.Sessions, 1)
		assert.Equal(t, "s1", backup.Sessions[0].ID)
		assert.Len(t, backup.Projects, 1)
	})

	t.Run("day without sessions yields an empty list, not null", func(t *testing.T) {
		src := &stubSource{}

		backup, err := BuildDailyBackup(src, "2024-01-15")
		require.NoError(t, err)
		require.NotNil(t, backup.Sessions)
		assert.Empty(t, backup.Sessions)

		data, err := json.Marshal(backup)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"sessions": []`)
	})

	t.Run("propagates source errors", func(t *testing.T) {
		src := &stubSource{err: errors.New("database gone")}

		_, err := BuildDailyBackup(src, "2024-01-15")
		assert.Error(t, err)
	})
}

func TestExportDailyBackup(t *testing.T) {
	day := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	src := &stubSource{
		sessions: []*model.TimeSession{stoppedSession("s1", "p1", day, 3600)},
		projects: []*model.Project{{ID: "p1", Name: "Website"}},
		stats: []*model.DailyStats{
			{Date: "2024-01-15", TotalSeconds: 3600, TotalHours: 1.0},
		},
	}

	data, err := ExportDailyBackup(src, "2024-01-15")
	require.NoError(t, err)

	var decoded DailyBackup
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-01-15", decoded.Date)
	require.Len(t, decoded.Sessions, 1)
	assert.Equal(t, "s1", decoded.Sessions[0].ID)
	require.Len(t, decoded.Stats, 1)
	assert.Equal(t, int64(3600), decoded.Stats[0].TotalSeconds)
}

func TestSaveDailyBackup(t *testing.T) {
	src := &stubSource{}
	path := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, SaveDailyBackup(src, "2024-01-15", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded DailyBackup
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-01-15", decoded.Date)
}

func TestCurrentMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "mid-month",
			now:       time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-31",
		},
		{
			name:      "leap february",
			now:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
		},
		{
			name:      "thirty-day month",
			now:       time.Date(2023, 4, 30, 23, 59, 0, 0, time.UTC),
			wantStart: "2023-04-01",
			wantEnd:   "2023-04-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CurrentMonthRange(tt.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
