package scheduler

import (
	"context"
	"time"

	"project_report_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Specs holds the cron expressions for every scheduled sweep. All specs are
// evaluated in the organization timezone.
type Specs struct {
	Reminder     string // hourly reminder + escalation pass
	AutoFlip     string // daily UPCOMING -> IN_PROGRESS flip
	Summary      string // daily noon summary
	OfficeAlerts string // daily office alerts
}

// SweepScheduler drives the periodic sweeps. Sweep errors are logged and the
// next tick runs as scheduled; a failed load simply skips that tick.
type SweepScheduler struct {
	cronEngine  *cron.Cron
	reminders   *app.ReminderService
	escalations *app.EscalationService
	projects    *app.ProjectService
	summary     *app.SummaryService
	office      *app.OfficeAlertsService
	logger      *logrus.Entry
	specs       Specs
}

func NewSweepScheduler(
	loc *time.Location,
	reminders *app.ReminderService,
	escalations *app.EscalationService,
	projects *app.ProjectService,
	summary *app.SummaryService,
	office *app.OfficeAlertsService,
	logger *logrus.Entry,
	specs Specs,
) *SweepScheduler {
	return &SweepScheduler{
		cronEngine:  cron.New(cron.WithLocation(loc)),
		reminders:   reminders,
		escalations: escalations,
		projects:    projects,
		summary:     summary,
		office:      office,
		logger:      logger,
		specs:       specs,
	}
}

// Start registers all jobs and kicks off the cron engine. An invalid spec is
// fatal: the bot is useless without its sweeps.
func (s *SweepScheduler) Start() {
	s.logger.Info("Starting sweep scheduler...")

	// Hourly pass: reminders first, then escalation checks. The two are
	// independent; a failure in one must not starve the other.
	_, err := s.cronEngine.AddFunc(s.specs.Reminder, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.reminders.RunReminderPass(ctx); err != nil {
			s.logger.Errorf("Reminder pass failed: %v", err)
		}
		if _, err := s.escalations.RunEscalationSweep(ctx); err != nil {
			s.logger.Errorf("Escalation sweep failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add hourly reminder job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.specs.AutoFlip, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		n, err := s.projects.AutoFlipStatuses(ctx)
		if err != nil {
			s.logger.Errorf("Auto-flip sweep failed: %v", err)
			return
		}
		if n > 0 {
			s.logger.Infof("Auto-flip sweep moved %d project(s) to in_progress", n)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add auto-flip job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.specs.Summary, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.summary.RunDailySummary(ctx); err != nil {
			s.logger.Errorf("Daily summary failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add daily summary job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.specs.OfficeAlerts, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.office.RunOfficeAlerts(ctx); err != nil {
			s.logger.Errorf("Office alerts failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add office alerts job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Sweep scheduler started with jobs.")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *SweepScheduler) Stop() {
	s.logger.Info("Stopping sweep scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Sweep scheduler gracefully stopped.")
}
