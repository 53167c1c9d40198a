package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/store"
	"project_report_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for project operations
var ErrProjectNotFound = fmt.Errorf("project not found")

// ProjectService owns project lifecycle mutations: onboarding/upserts,
// status changes, close/reopen, and the daily UPCOMING -> IN_PROGRESS flip.
type ProjectService struct {
	docStore store.Store
	clk      clock.Clock
	loc      *time.Location
	logger   *logrus.Entry
}

func NewProjectService(docStore store.Store, clk clock.Clock, loc *time.Location, logger *logrus.Entry) *ProjectService {
	return &ProjectService{docStore: docStore, clk: clk, loc: loc, logger: logger}
}

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseDateToISO coerces the date spellings found in the data file
// (YYYY-MM-DD, M/D/YYYY, and a handful of free-form formats) into a civil
// date string. The second return value is false when nothing parses.
func ParseDateToISO(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if isoDateRe.MatchString(s) {
		return s, true
	}
	if m := usDateRe.FindStringSubmatch(s); m != nil {
		t, err := time.Parse("1/2/2006", s)
		if err == nil {
			return t.Format(clock.CivilDateLayout), true
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05Z07:00", "Jan 2, 2006", "January 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clock.CivilDateLayout), true
		}
	}
	return "", false
}

// AutoFlipStatuses is the daily sweep that transitions UPCOMING projects
// whose start date has arrived into IN_PROGRESS. Returns how many projects
// were flipped.
func (s *ProjectService) AutoFlipStatuses(ctx context.Context) (int, error) {
	now := s.clk.Now().In(s.loc)
	today := clock.CivilDate(now, s.loc)

	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("auto-flip sweep: failed to load document: %w", err)
	}

	changed := 0
	for _, p := range doc.Projects {
		if project.Normalize(p.Status) != project.StatusUpcoming {
			continue
		}
		startISO, ok := ParseDateToISO(p.StartDate)
		if !ok || startISO > today {
			continue
		}
		p.SetStatus(string(project.StatusInProgress))
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		return changed, fmt.Errorf("auto-flip sweep: failed to save document: %w", err)
	}
	s.logger.Infof("Auto-flipped %d project(s) to in_progress for %s", changed, today)
	return changed, nil
}

// UpsertProject creates or updates a project, matching on thread channel
// first and id second. New projects get the next sequential id.
func (s *ProjectService) UpsertProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	var existing *project.Project
	if p.ThreadChannelID != "" {
		existing = doc.ProjectByThread(p.ThreadChannelID)
	}
	if existing == nil && p.ID != 0 {
		existing = doc.ProjectByID(p.ID)
	}

	if existing != nil {
		p.ID = existing.ID
		*existing = *p
		p = existing
	} else {
		p.ID = doc.NextProjectID()
		doc.Projects = append(doc.Projects, p)
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return p, nil
}

// SetStatusByThread changes a project's status. All status writes funnel
// through Project.SetStatus, which is deliberately permissive: any state may
// follow any other.
func (s *ProjectService) SetStatusByThread(ctx context.Context, threadChannelID, status string) (*project.Project, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	p := doc.ProjectByThread(threadChannelID)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	p.SetStatus(status)
	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.logger.Infof("Project %d (%s) status set to %q", p.ID, p.Name, p.Status)
	return p, nil
}

// CloseByThread soft-closes a project. Closed projects remain in the
// document; closing never deletes.
func (s *ProjectService) CloseByThread(ctx context.Context, threadChannelID, reason, closedBy string) (*project.Project, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	p := doc.ProjectByThread(threadChannelID)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	p.Close(reason, closedBy, s.clk.Now())
	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.logger.Infof("Project %d (%s) closed by %s", p.ID, p.Name, closedBy)
	return p, nil
}

// ReopenByThread reverses a close.
func (s *ProjectService) ReopenByThread(ctx context.Context, threadChannelID, reopenedBy string) (*project.Project, error) {
	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	p := doc.ProjectByThread(threadChannelID)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	p.Reopen(reopenedBy)
	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.logger.Infof("Project %d (%s) reopened by %s", p.ID, p.Name, reopenedBy)
	return p, nil
}
