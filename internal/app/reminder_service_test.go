package app

import (
	"context"
	"testing"
	"time"

	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/report"
	"project_report_bot/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inProgressProject(id int64, reminderTime string) *project.Project {
	return &project.Project{
		ID:            id,
		Name:          "Warehouse Build",
		Status:        "in_progress",
		ForemanUserID: "foreman-1",
		ReminderTime:  reminderTime,
	}
}

func TestSelectDueProjects(t *testing.T) {
	const today = "2024-01-10"

	t.Run("in-progress project at its hour is due", func(t *testing.T) {
		doc := store.NewDocument()
		doc.Projects = []*project.Project{inProgressProject(1, "08:00")}

		due := SelectDueProjects(doc, 8, today)
		require.Len(t, due, 1)
		assert.EqualValues(t, 1, due[0].ID)
	})

	t.Run("hour mismatch excludes", func(t *testing.T) {
		doc := store.NewDocument()
		doc.Projects = []*project.Project{inProgressProject(1, "08:00")}
		assert.Empty(t, SelectDueProjects(doc, 9, today))
	})

	t.Run("default hour 19 when reminder time unparseable", func(t *testing.T) {
		doc := store.NewDocument()
		doc.Projects = []*project.Project{inProgressProject(1, "not a time")}
		assert.Len(t, SelectDueProjects(doc, 19, today), 1)
	})

	t.Run("paused or reminders off excludes", func(t *testing.T) {
		paused := inProgressProject(1, "08:00")
		paused.Paused = true
		off := inProgressProject(2, "08:00")
		off.ReminderActive = boolPtr(false)

		doc := store.NewDocument()
		doc.Projects = []*project.Project{paused, off}
		assert.Empty(t, SelectDueProjects(doc, 8, today))
	})

	t.Run("today's report suppresses at any hour", func(t *testing.T) {
		doc := store.NewDocument()
		doc.Projects = []*project.Project{inProgressProject(1, "08:00")}
		doc.DailyReports = []*report.DailyReport{{ID: 1, ProjectID: 1, ReportDate: today}}

		for hour := 0; hour < 24; hour++ {
			assert.Empty(t, SelectDueProjects(doc, hour, today), "hour %d", hour)
		}
	})

	t.Run("existing log entry suppresses", func(t *testing.T) {
		doc := store.NewDocument()
		doc.Projects = []*project.Project{inProgressProject(1, "08:00")}
		doc.LogReminder(1, today, 8)
		assert.Empty(t, SelectDueProjects(doc, 8, today))
	})

	t.Run("completed project is never due", func(t *testing.T) {
		p := inProgressProject(1, "08:00")
		p.Status = "complete_no_gobacks"
		doc := store.NewDocument()
		doc.Projects = []*project.Project{p}

		for hour := 0; hour < 24; hour++ {
			assert.Empty(t, SelectDueProjects(doc, hour, today), "hour %d", hour)
		}
	})

	t.Run("started non-active project with no reports gets one-time nudge", func(t *testing.T) {
		p := inProgressProject(1, "08:00")
		p.Status = "on_hold"
		p.StartDate = "2024-01-05"
		doc := store.NewDocument()
		doc.Projects = []*project.Project{p}

		assert.Len(t, SelectDueProjects(doc, 8, today), 1)
	})

	t.Run("started non-active project with any prior report is not due", func(t *testing.T) {
		p := inProgressProject(1, "08:00")
		p.Status = "on_hold"
		p.StartDate = "2024-01-05"
		doc := store.NewDocument()
		doc.Projects = []*project.Project{p}
		doc.DailyReports = []*report.DailyReport{{ID: 1, ProjectID: 1, ReportDate: "2024-01-06"}}

		assert.Empty(t, SelectDueProjects(doc, 8, today))
	})

	t.Run("non-active project falls back to first report date for started check", func(t *testing.T) {
		p := inProgressProject(1, "08:00")
		p.Status = "upcoming"
		p.StartDate = ""
		doc := store.NewDocument()
		doc.Projects = []*project.Project{p}

		// No start date, no reports: not started, not due.
		assert.Empty(t, SelectDueProjects(doc, 8, today))
	})

	t.Run("future start date not due", func(t *testing.T) {
		p := inProgressProject(1, "08:00")
		p.Status = "upcoming"
		p.StartDate = "2024-02-01"
		doc := store.NewDocument()
		doc.Projects = []*project.Project{p}

		assert.Empty(t, SelectDueProjects(doc, 8, today))
	})
}

func TestRunReminderPassSingleFire(t *testing.T) {
	// 2024-01-10 08:30 in Chicago.
	now := time.Date(2024, 1, 10, 8, 30, 0, 0, chicago())

	doc := store.NewDocument()
	doc.Projects = []*project.Project{inProgressProject(1, "08:00")}
	st := newFakeStore(doc)
	notifier := &fakeNotifier{}

	svc := NewReminderService(st, notifier, fixedClock{now}, chicago(), testLogger())

	attempts, err := svc.RunReminderPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	require.Len(t, notifier.dms, 1)
	assert.Equal(t, "foreman-1", notifier.dms[0].target)
	assert.Contains(t, notifier.dms[0].msg.Content, "Warehouse Build")
	assert.Contains(t, notifier.dms[0].msg.Content, "2024-01-10")
	assert.Equal(t, "rem:dismiss:1", notifier.dms[0].msg.DismissCustomID)

	// The second pass in the same hour slot must be a no-op.
	attempts, err = svc.RunReminderPass(context.Background())
	require.NoError(t, err)
	assert.Zero(t, attempts)
	assert.Len(t, notifier.dms, 1)
}

func TestRunReminderPassLogsEvenWhenDeliveryFails(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, chicago())

	doc := store.NewDocument()
	doc.Projects = []*project.Project{inProgressProject(1, "08:00")}
	st := newFakeStore(doc)
	notifier := &fakeNotifier{failDM: true}

	svc := NewReminderService(st, notifier, fixedClock{now}, chicago(), testLogger())

	attempts, err := svc.RunReminderPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	// Log-then-forget: the slot is consumed despite the failed DM.
	assert.True(t, st.doc.AlreadyReminded(1, "2024-01-10", 8))
	attempts, err = svc.RunReminderPass(context.Background())
	require.NoError(t, err)
	assert.Zero(t, attempts)
}

func TestRunReminderPassMissingForemanFailsSoft(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, chicago())

	p := inProgressProject(1, "08:00")
	p.ForemanUserID = ""
	doc := store.NewDocument()
	doc.Projects = []*project.Project{p}
	st := newFakeStore(doc)
	notifier := &fakeNotifier{}

	svc := NewReminderService(st, notifier, fixedClock{now}, chicago(), testLogger())

	attempts, err := svc.RunReminderPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, notifier.dms)
	assert.True(t, st.doc.AlreadyReminded(1, "2024-01-10", 8))
}

func TestRunReminderPassPropagatesLoadFailure(t *testing.T) {
	st := newFakeStore(store.NewDocument())
	st.loadErr = assert.AnError

	svc := NewReminderService(st, &fakeNotifier{}, fixedClock{time.Now()}, chicago(), testLogger())
	_, err := svc.RunReminderPass(context.Background())
	assert.Error(t, err)
}
