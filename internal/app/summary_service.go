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
	"project_report_bot/internal/infra/weather"

	"github.com/sirupsen/logrus"
)

// SummaryService posts the daily noon overview: a monospace table of every
// tracked project plus, when the weather client is wired in, hazard warnings
// for in-progress sites.
type SummaryService struct {
	docStore  store.Store
	notifier  notify.Client
	wx        *weather.Client // nil disables the weather section
	channelID string
	clk       clock.Clock
	loc       *time.Location
	logger    *logrus.Entry
}

func NewSummaryService(
	docStore store.Store,
	notifier notify.Client,
	wx *weather.Client,
	channelID string,
	clk clock.Clock,
	loc *time.Location,
	logger *logrus.Entry,
) *SummaryService {
	return &SummaryService{
		docStore:  docStore,
		notifier:  notifier,
		wx:        wx,
		channelID: channelID,
		clk:       clk,
		loc:       loc,
		logger:    logger,
	}
}

type summaryRow struct {
	name, status, foreman, start, anticipated, totalHrs, flags string
}

// RunDailySummary builds and posts the summary table. Skipped entirely when
// no summary channel is configured.
func (s *SummaryService) RunDailySummary(ctx context.Context) error {
	if s.channelID == "" {
		s.logger.Debug("No summary channel configured; skipping daily summary")
		return nil
	}

	doc, err := s.docStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("daily summary: failed to load document: %w", err)
	}

	projects := doc.SummaryProjects()
	if len(projects) == 0 {
		s.logger.Info("No projects to summarize today")
		return nil
	}

	today := clock.CivilDate(s.clk.Now(), s.loc)
	rows := make([]summaryRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, s.buildRow(doc, p))
	}

	content := fmt.Sprintf("📊 %s — Project Daily Summary\n```\n%s\n```", today, renderTable(rows))
	if wxLines := s.weatherSection(ctx, projects); wxLines != "" {
		content += "\n" + wxLines
	}

	if err := s.notifier.SendChannelMessage(s.channelID, notify.Message{Content: content, SuppressMentions: true}); err != nil {
		return fmt.Errorf("daily summary: failed to post: %w", err)
	}
	s.logger.Infof("Daily summary posted for %d project(s)", len(rows))
	return nil
}

func (s *SummaryService) buildRow(doc *store.Document, p *project.Project) summaryRow {
	status := project.Normalize(p.Status)

	totalHrs := "—"
	if latest := doc.LatestReport(p.ID); latest != nil && latest.CumManHours > 0 {
		totalHrs = fmt.Sprintf("%.1f", latest.CumManHours)
	}

	flags := ""
	if doc.CountMissed(p.ID) > 0 {
		flags = "⚠️ Missed"
	}

	return summaryRow{
		name:        truncate(p.Name, 36),
		status:      truncate(status.Label(), 24),
		foreman:     truncate(orDash(p.ForemanDisplay), 18),
		start:       orDash(p.StartDate),
		anticipated: orDash(p.AnticipatedEnd),
		totalHrs:    totalHrs,
		flags:       truncate(flags, 50),
	}
}

func (s *SummaryService) weatherSection(ctx context.Context, projects []*project.Project) string {
	if s.wx == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range projects {
		if project.Normalize(p.Status) != project.StatusInProgress {
			continue
		}
		cityState := weather.ExtractCityState(p.Name)
		if cityState == "" {
			continue
		}

		place, err := s.wx.Geocode(ctx, cityState)
		if err != nil || place == nil {
			s.logger.Debugf("Geocode for %q failed or empty: %v", cityState, err)
			continue
		}
		fc, err := s.wx.FetchHourly(ctx, place.Lat, place.Lon, s.loc)
		if err != nil {
			s.logger.Debugf("Forecast for %q failed: %v", cityState, err)
			continue
		}
		for _, line := range weather.HazardLines(fc, s.loc) {
			fmt.Fprintf(&b, "• %s: %s\n", p.Name, line)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "**Weather watch (next 24h):**\n" + b.String()
}

func renderTable(rows []summaryRow) string {
	headers := []string{"Project", "Status", "Foreman", "Start", "Anticipated End", "Total Hrs", "Flags (ever)"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	cells := func(r summaryRow) []string {
		return []string{r.name, r.status, r.foreman, r.start, r.anticipated, r.totalHrs, r.flags}
	}
	for _, r := range rows {
		for i, c := range cells(r) {
			if n := len([]rune(c)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	writeLine := func(cols []string) {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = pad(c, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}
	writeLine(headers)
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = strings.Repeat("-", widths[i])
	}
	writeLine(seps)
	for _, r := range rows {
		writeLine(cells(r))
	}
	return strings.TrimRight(b.String(), "\n")
}

func pad(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
