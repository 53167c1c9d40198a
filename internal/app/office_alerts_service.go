package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project_report_bot/internal/domain/notify"
	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/store"
	"project_report_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
)

// OfficeAlertsService runs the daily data-hygiene sweep: in-progress
// projects missing critical fields, and daily reports filed against projects
// that are not in progress. One combined message per day; nothing is posted
// when the data is clean.
type OfficeAlertsService struct {
	docStore  store.Store
	notifier  notify.Client
	channelID string
	clk       clock.Clock
	loc       *time.Location
	logger    *logrus.Entry
}

func NewOfficeAlertsService(
	docStore store.Store,
	notifier notify.Client,
	channelID string,
	clk clock.Clock,
	loc *time.Location,
	logger *logrus.Entry,
) *OfficeAlertsService {
	return &OfficeAlertsService{
		docStore:  docStore,
		notifier:  notifier,
		channelID: channelID,
		clk:       clk,
		loc:       loc,
		logger:    logger,
	}
}

// RunOfficeAlerts checks every project and posts the combined alert message.
func (s *OfficeAlertsService) RunOfficeAlerts(ctx context.Context) error {
	if s.channelID == "" {
		s.logger.Debug("No office channel configured; skipping office alerts")
		return nil
	}

	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("office alerts: failed to load document: %w", err)
	}
	today := clock.CivilDate(s.clk.Now(), s.loc)

	var missingData []string
	var wrongStatusReports []string

	for _, p := range doc.Projects {
		status := project.Normalize(p.Status)

		if status == project.StatusInProgress {
			var missing []string
			if p.ForemanDisplay == "" && p.ForemanUserID == "" {
				missing = append(missing, "foreman")
			}
			if p.AnticipatedEnd == "" && p.CompletedAt == "" {
				missing = append(missing, "anticipated end date")
			}
			if len(missing) > 0 {
				missingData = append(missingData, fmt.Sprintf("• %s — Missing: %s", p.Name, strings.Join(missing, " and ")))
			}
			continue
		}

		if doc.HasReportOn(p.ID, today) {
			label := p.Status
			if label == "" {
				label = "Unknown"
			}
			wrongStatusReports = append(wrongStatusReports, fmt.Sprintf("• %s — Status: %s", p.Name, label))
		}
	}

	if len(missingData) == 0 && len(wrongStatusReports) == 0 {
		s.logger.Info("Office alerts: no issues found today")
		return nil
	}

	var b strings.Builder
	b.WriteString("⚠️ **Daily Project Alerts** ⚠️\n\n")
	if len(missingData) > 0 {
		b.WriteString("**Projects \"In Progress\" missing critical data:**\n")
		b.WriteString(strings.Join(missingData, "\n"))
		b.WriteString("\n\n")
	}
	if len(wrongStatusReports) > 0 {
		b.WriteString("**Daily reports submitted for projects NOT \"In Progress\":**\n")
		b.WriteString(strings.Join(wrongStatusReports, "\n"))
		b.WriteString("\n")
	}

	msg := notify.Message{Content: strings.TrimRight(b.String(), "\n"), SuppressMentions: true}
	if err := s.notifier.SendChannelMessage(s.channelID, msg); err != nil {
		return fmt.Errorf("office alerts: failed to post: %w", err)
	}
	s.logger.Infof("Office alerts posted: %d missing-data, %d wrong-status", len(missingData), len(wrongStatusReports))
	return nil
}
