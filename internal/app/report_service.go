package app

import (
	"context"
	"fmt"
	"time"

	"project_report_bot/internal/domain/report"
	"project_report_bot/internal/domain/store"
	"project_report_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
)

var ErrReportNotFound = fmt.Errorf("report not found")

// ReportService ingests daily report submissions and trigger-tag updates.
type ReportService struct {
	docStore store.Store
	clk      clock.Clock
	loc      *time.Location
	logger   *logrus.Entry
}

func NewReportService(docStore store.Store, clk clock.Clock, loc *time.Location, logger *logrus.Entry) *ReportService {
	return &ReportService{docStore: docStore, clk: clk, loc: loc, logger: logger}
}

// SubmitReport appends a new daily report and stamps the owning project's
// last-report tracking fields. The first 100% report also records the
// project's completion date. Reports against unknown project ids are still
// stored.
func (s *ReportService) SubmitReport(ctx context.Context, r *report.DailyReport) (*report.DailyReport, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	now := s.clk.Now()
	r.ID = doc.NextReportID()
	if r.CreatedAt == "" {
		r.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	if r.ReportDate == "" {
		r.ReportDate = clock.CivilDate(now, s.loc)
	}
	doc.DailyReports = append(doc.DailyReports, r)

	if p := doc.ProjectByID(r.ProjectID); p != nil {
		p.LastReportDate = r.ReportDate
		p.LastReportDateTime = r.CreatedAt
		if r.PercentComplete == 100 && p.CompletedAt == "" {
			p.CompletedAt = r.ReportDate
		}
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.logger.Infof("Report %d submitted for project %d (%s, %d%%)", r.ID, r.ProjectID, r.ReportDate, r.PercentComplete)
	return r, nil
}

// UpdateReportTriggers replaces a report's trigger tags (deduplicated,
// order-preserving) and records one TriggerEvent per new (report, type)
// pair. Triggers are the only mutable part of a report.
func (s *ReportService) UpdateReportTriggers(ctx context.Context, reportID int64, triggers []string, authorUserID string) (*report.DailyReport, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	r := doc.ReportByID(reportID)
	if r == nil {
		return nil, ErrReportNotFound
	}

	seen := make(map[string]bool, len(triggers))
	deduped := make([]string, 0, len(triggers))
	for _, t := range triggers {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		deduped = append(deduped, t)
	}
	r.Triggers = deduped

	now := s.clk.Now().UTC().Format(time.RFC3339)
	for _, t := range deduped {
		if hasTriggerEvent(doc, r.ID, t) {
			continue
		}
		doc.TriggerEvents = append(doc.TriggerEvents, report.TriggerEvent{
			ProjectID:    r.ProjectID,
			ReportID:     r.ID,
			Type:         t,
			CreatedAt:    now,
			AuthorUserID: authorUserID,
		})
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return r, nil
}

func hasTriggerEvent(doc *store.Document, reportID int64, triggerType string) bool {
	for _, e := range doc.TriggerEvents {
		if e.ReportID == reportID && e.Type == triggerType {
			return true
		}
	}
	return false
}

// RecordMissedDay notes that a project went a calendar day without a report,
// once per project/date.
func (s *ReportService) RecordMissedDay(ctx context.Context, projectID int64, date string) error {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if !doc.AddMissedDay(projectID, date) {
		return nil
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}
