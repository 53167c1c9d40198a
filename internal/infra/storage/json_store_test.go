package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"project_report_bot/internal/domain/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")
	s := NewJSONStore(path)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Projects)
	assert.NotNil(t, doc.ReminderLog)

	_, err = os.Stat(path)
	assert.NoError(t, err, "data file should have been created")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := NewJSONStore(path)
	ctx := context.Background()

	doc, err := s.Load(ctx)
	require.NoError(t, err)

	doc.Projects = append(doc.Projects, &project.Project{
		ID:           1,
		Name:         "Roundtrip Site",
		Status:       "in_progress",
		ReminderTime: "08:00",
	})
	doc.LogReminder(1, "2024-01-10", 8)
	doc.LogFourHour(1, "2024-01-10")
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Roundtrip Site", got.Projects[0].Name)
	assert.True(t, got.AlreadyReminded(1, "2024-01-10", 8))
	assert.True(t, got.FourHourLoggedOn(1, "2024-01-10"))
	assert.False(t, got.CriticalLoggedOn(1, "2024-01-10"))
}

func TestLoadBackfillsMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	// Hand-written file from an older layout: only projects present.
	raw := `{"projects":[{"id":1,"name":"Old","status":"open"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	doc, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	assert.NotNil(t, doc.DailyReports)
	assert.NotNil(t, doc.ReminderLog)
	assert.NotNil(t, doc.MissedReports)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).Load(context.Background())
	assert.Error(t, err)
}
