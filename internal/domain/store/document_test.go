package store

import (
	"testing"

	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReminderDeduplicates(t *testing.T) {
	doc := NewDocument()

	assert.True(t, doc.LogReminder(1, "2024-01-10", 8))
	assert.False(t, doc.LogReminder(1, "2024-01-10", 8))
	require.Len(t, doc.ReminderLog, 1)

	// Different hour or date is a different slot.
	assert.True(t, doc.LogReminder(1, "2024-01-10", 9))
	assert.True(t, doc.LogReminder(1, "2024-01-11", 8))
	assert.Len(t, doc.ReminderLog, 3)
}

func TestEscalationLogsAreIndependentPerTier(t *testing.T) {
	doc := NewDocument()

	assert.True(t, doc.LogFourHour(1, "2024-01-10"))
	assert.False(t, doc.LogFourHour(1, "2024-01-10"))
	assert.False(t, doc.CriticalLoggedOn(1, "2024-01-10"))

	assert.True(t, doc.LogCritical(1, "2024-01-10"))
	assert.False(t, doc.LogCritical(1, "2024-01-10"))
	assert.Len(t, doc.FourHourLog, 1)
	assert.Len(t, doc.CriticalLog, 1)
}

func TestNextIDs(t *testing.T) {
	doc := NewDocument()
	assert.EqualValues(t, 1, doc.NextProjectID())
	assert.EqualValues(t, 1, doc.NextReportID())

	doc.Projects = append(doc.Projects, &project.Project{ID: 7})
	doc.DailyReports = append(doc.DailyReports, &report.DailyReport{ID: 3})
	assert.EqualValues(t, 8, doc.NextProjectID())
	assert.EqualValues(t, 4, doc.NextReportID())
}

func TestReportQueries(t *testing.T) {
	doc := NewDocument()
	doc.DailyReports = []*report.DailyReport{
		{ID: 1, ProjectID: 1, ReportDate: "2024-01-12"},
		{ID: 2, ProjectID: 1, ReportDate: "2024-01-10"},
		{ID: 3, ProjectID: 2, ReportDate: "2024-01-11"},
	}

	assert.True(t, doc.HasReportOn(1, "2024-01-10"))
	assert.False(t, doc.HasReportOn(1, "2024-01-11"))
	assert.True(t, doc.HasAnyReport(2))
	assert.False(t, doc.HasAnyReport(3))

	assert.Equal(t, "2024-01-10", doc.FirstReportDate(1))
	assert.Equal(t, "", doc.FirstReportDate(3))

	latest := doc.LatestReport(1)
	require.NotNil(t, latest)
	assert.EqualValues(t, 1, latest.ID)
	assert.Nil(t, doc.LatestReport(3))
}

func TestAddMissedDayIdempotent(t *testing.T) {
	doc := NewDocument()
	assert.True(t, doc.AddMissedDay(1, "2024-01-10"))
	assert.False(t, doc.AddMissedDay(1, "2024-01-10"))
	assert.True(t, doc.AddMissedDay(1, "2024-01-11"))
	assert.Equal(t, 2, doc.CountMissed(1))
	assert.Equal(t, 0, doc.CountMissed(2))
}

func TestSummaryProjectsFiltering(t *testing.T) {
	tracked := true
	untracked := false
	doc := NewDocument()
	doc.Projects = []*project.Project{
		{ID: 1, Name: "active"},
		{ID: 2, Name: "paused", Paused: true},
		{ID: 3, Name: "paused but completed and tracked", Paused: true, CompletedAt: "2024-01-01", TrackInSummary: &tracked},
		{ID: 4, Name: "paused completed untracked", Paused: true, CompletedAt: "2024-01-01", TrackInSummary: &untracked},
	}

	got := doc.SummaryProjects()
	require.Len(t, got, 2)
	assert.EqualValues(t, 1, got[0].ID)
	assert.EqualValues(t, 3, got[1].ID)
}
