package app

import (
	"context"
	"fmt"
	"time"

	"project_report_bot/internal/domain/notify"
	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/store"
	"project_report_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
)

// ReminderService runs the hourly reminder pass: it selects the projects due
// for a daily-report nudge at the current hour and DMs each project's
// foreman. Delivery is fire-and-forget; a reminder log entry is recorded
// after each attempt so the slot never fires twice, even when delivery
// failed.
type ReminderService struct {
	docStore store.Store
	notifier notify.Client
	clk      clock.Clock
	loc      *time.Location
	logger   *logrus.Entry
}

func NewReminderService(
	docStore store.Store,
	notifier notify.Client,
	clk clock.Clock,
	loc *time.Location,
	logger *logrus.Entry,
) *ReminderService {
	return &ReminderService{
		docStore: docStore,
		notifier: notifier,
		clk:      clk,
		loc:      loc,
		logger:   logger,
	}
}

// SelectDueProjects returns the projects due for a reminder at the given
// hour on the given civil date. A project is due when all of the following
// hold:
//   - it is not paused and reminders are not switched off;
//   - no reminder was already logged for this day/hour slot;
//   - its configured reminder hour matches exactly (one slot per day);
//   - no report has been filed for today;
//   - it is in progress, or it has started (start date, falling back to the
//     earliest report date) and has never filed a single report, which earns
//     a one-time nudge to get the first report in.
func SelectDueProjects(doc *store.Document, hour int, today string) []*project.Project {
	due := make([]*project.Project, 0)
	for _, p := range doc.Projects {
		if p.Paused || !p.ReminderEnabled() {
			continue
		}
		if doc.AlreadyReminded(p.ID, today, hour) {
			continue
		}
		if p.ReminderHour() != hour {
			continue
		}
		if doc.HasReportOn(p.ID, today) {
			continue
		}

		status := project.Normalize(p.Status)
		if status == project.StatusInProgress {
			due = append(due, p)
			continue
		}

		startDate := p.StartDate
		if startDate == "" {
			startDate = doc.FirstReportDate(p.ID)
		}
		started := startDate != "" && startDate <= today
		if started && !doc.HasAnyReport(p.ID) {
			due = append(due, p)
		}
	}
	return due
}

// RunReminderPass evaluates all projects for the current hour and sends the
// due reminders. Store I/O failures propagate to the scheduler tick; anything
// that goes wrong with a single project is swallowed and the pass moves on.
// Returns the number of reminder attempts.
func (s *ReminderService) RunReminderPass(ctx context.Context) (int, error) {
	now := s.clk.Now()
	hour := clock.CivilHour(now, s.loc)
	today := clock.CivilDate(now, s.loc)

	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("reminder pass: failed to load document: %w", err)
	}

	due := SelectDueProjects(doc, hour, today)
	if len(due) == 0 {
		s.logger.Debugf("No projects due for reminder at hour %d on %s", hour, today)
		return 0, nil
	}

	attempts := 0
	for _, p := range due {
		attempts++
		s.sendReminder(p, today)
		// Log-then-forget: the slot is consumed by the attempt, not by a
		// confirmed delivery. No retries.
		doc.LogReminder(p.ID, today, hour)
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		return attempts, fmt.Errorf("reminder pass: failed to save document: %w", err)
	}
	s.logger.Infof("Reminder pass complete: %d attempt(s) at hour %d on %s", attempts, hour, today)
	return attempts, nil
}

func (s *ReminderService) sendReminder(p *project.Project, today string) {
	if p.ForemanUserID == "" {
		s.logger.Debugf("Project %d (%s) has no foreman to remind", p.ID, p.Name)
		return
	}
	msg := notify.Message{
		Content: fmt.Sprintf(
			"⏰ Daily Report Reminder — **%s**\nWe don't have today's report (CT %s). You can **DISMISS** this message to hide it.",
			p.Name, today,
		),
		DismissCustomID: fmt.Sprintf("rem:dismiss:%d", p.ID),
	}
	if err := s.notifier.SendDirectMessage(p.ForemanUserID, msg); err != nil {
		s.logger.Debugf("Reminder DM to foreman %s for project %d failed: %v", p.ForemanUserID, p.ID, err)
	}
}
