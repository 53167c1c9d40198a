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

// Silence thresholds for the two escalation tiers.
const (
	FirstWarningAfter = 4 * time.Hour
	CriticalAfter     = 48 * time.Hour
)

// Escalation tiers.
const (
	TierFirstWarning = 1
	TierCritical     = 2
)

// EscalationAction describes one escalation that should be delivered.
type EscalationAction struct {
	Tier    int
	Project *project.Project
	Elapsed time.Duration
}

// EscalationService watches active projects for prolonged report silence and
// escalates to the supervisor channel in two tiers: a first warning after 4
// hours and a critical alert after 48. Each tier fires at most once per civil
// day per project, tracked through the per-day escalation logs.
type EscalationService struct {
	docStore            store.Store
	notifier            notify.Client
	clk                 clock.Clock
	loc                 *time.Location
	supervisorChannelID string
	supervisorRoleID    string
	logger              *logrus.Entry
}

func NewEscalationService(
	docStore store.Store,
	notifier notify.Client,
	clk clock.Clock,
	loc *time.Location,
	supervisorChannelID string,
	supervisorRoleID string,
	logger *logrus.Entry,
) *EscalationService {
	return &EscalationService{
		docStore:            docStore,
		notifier:            notifier,
		clk:                 clk,
		loc:                 loc,
		supervisorChannelID: supervisorChannelID,
		supervisorRoleID:    supervisorRoleID,
		logger:              logger,
	}
}

// CheckEscalations decides whether the project needs an escalation at the
// given instant. Only projects in progress and not closed are considered.
// The tiers are independent: the first warning having fired does not block
// the critical alert once elapsed time crosses 48 hours, and each is gated
// by its own per-day log. Returns nil when nothing is due.
func CheckEscalations(doc *store.Document, p *project.Project, now time.Time, loc *time.Location) *EscalationAction {
	if p.IsClosed || project.Normalize(p.Status) != project.StatusInProgress {
		return nil
	}
	last, ok := p.LastReportInstant(loc)
	if !ok {
		return nil
	}

	elapsed := now.Sub(last)
	today := clock.CivilDate(now, loc)

	if elapsed >= CriticalAfter {
		if doc.CriticalLoggedOn(p.ID, today) {
			return nil
		}
		return &EscalationAction{Tier: TierCritical, Project: p, Elapsed: elapsed}
	}
	if elapsed >= FirstWarningAfter {
		if doc.FourHourLoggedOn(p.ID, today) {
			return nil
		}
		return &EscalationAction{Tier: TierFirstWarning, Project: p, Elapsed: elapsed}
	}
	return nil
}

// RunEscalationSweep evaluates every project once. A delivery failure on one
// project is logged and never blocks the rest of the sweep; the escalation
// log entry is recorded after the attempt either way. Returns the number of
// escalations attempted.
func (s *EscalationService) RunEscalationSweep(ctx context.Context) (int, error) {
	now := s.clk.Now().In(s.loc)
	today := clock.CivilDate(now, s.loc)

	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("escalation sweep: failed to load document: %w", err)
	}

	attempts := 0
	for _, p := range doc.Projects {
		action := CheckEscalations(doc, p, now, s.loc)
		if action == nil {
			continue
		}
		attempts++

		if err := s.notifier.SendChannelMessage(s.supervisorChannelID, s.escalationMessage(action)); err != nil {
			s.logger.Errorf("Escalation tier %d for project %d (%s) failed to deliver: %v", action.Tier, p.ID, p.Name, err)
		}

		switch action.Tier {
		case TierFirstWarning:
			doc.LogFourHour(p.ID, today)
		case TierCritical:
			doc.LogCritical(p.ID, today)
		}
	}

	if attempts == 0 {
		return 0, nil
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		return attempts, fmt.Errorf("escalation sweep: failed to save document: %w", err)
	}
	s.logger.Infof("Escalation sweep complete: %d escalation(s) on %s", attempts, today)
	return attempts, nil
}

func (s *EscalationService) escalationMessage(action *EscalationAction) notify.Message {
	hours := int(action.Elapsed.Hours())
	mention := ""
	if s.supervisorRoleID != "" {
		mention = fmt.Sprintf("<@&%s> ", s.supervisorRoleID)
	}

	var content string
	switch action.Tier {
	case TierCritical:
		content = fmt.Sprintf("%s🚨 **Critical escalation** — **%s** has gone %dh without a daily report.",
			mention, action.Project.Name, hours)
	default:
		content = fmt.Sprintf("%s⚠️ **First warning** — no daily report for **%s** in %dh.",
			mention, action.Project.Name, hours)
	}
	return notify.Message{Content: content}
}
