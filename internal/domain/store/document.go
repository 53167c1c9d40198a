package store

import (
	"project_report_bot/internal/domain/project"
	"project_report_bot/internal/domain/report"
)

// Settings holds channel/forum wiring that lives in the data file rather
// than the environment, so it can be changed at runtime by admin commands.
type Settings struct {
	ProjectCategoryID string `json:"project_category_id,omitempty"`
	SummaryForumID    string `json:"summary_forum_id,omitempty"`
}

// ReminderLogEntry marks that a reminder was already sent for a project on a
// given civil day and hour. Its existence suppresses duplicate sends when the
// hourly pass re-runs.
type ReminderLogEntry struct {
	ProjectID int64  `json:"project_id"`
	CTDate    string `json:"ct_date"`
	CTHour    int    `json:"ct_hour"`
}

// EscalationLogEntry marks that an escalation tier already fired for a
// project on a given civil day. Used for both the four-hour and the critical
// log.
type EscalationLogEntry struct {
	ProjectID int64  `json:"project_id"`
	CTDate    string `json:"ct_date"`
}

// MissedReportEntry records one calendar day a project went without a report.
type MissedReportEntry struct {
	ProjectID int64  `json:"project_id"`
	CTDate    string `json:"ct_date"`
}

// Document is the entire persisted state of the bot.
type Document struct {
	Settings      Settings               `json:"settings"`
	Projects      []*project.Project     `json:"projects"`
	DailyReports  []*report.DailyReport  `json:"daily_reports"`
	TriggerEvents []report.TriggerEvent  `json:"trigger_events"`
	ReminderLog   []ReminderLogEntry     `json:"reminder_log"`
	FourHourLog   []EscalationLogEntry   `json:"four_hour_log"`
	CriticalLog   []EscalationLogEntry   `json:"critical_log"`
	MissedReports []MissedReportEntry    `json:"missed_reports"`
}

// NewDocument returns an empty document with all collections initialized, so
// a freshly created data file round-trips as arrays rather than nulls.
func NewDocument() *Document {
	return &Document{
		Projects:      []*project.Project{},
		DailyReports:  []*report.DailyReport{},
		TriggerEvents: []report.TriggerEvent{},
		ReminderLog:   []ReminderLogEntry{},
		FourHourLog:   []EscalationLogEntry{},
		CriticalLog:   []EscalationLogEntry{},
		MissedReports: []MissedReportEntry{},
	}
}

// EnsureDefaults backfills nil collections on documents loaded from older or
// hand-edited data files.
func (d *Document) EnsureDefaults() {
	if d.Projects == nil {
		d.Projects = []*project.Project{}
	}
	if d.DailyReports == nil {
		d.DailyReports = []*report.DailyReport{}
	}
	if d.TriggerEvents == nil {
		d.TriggerEvents = []report.TriggerEvent{}
	}
	if d.ReminderLog == nil {
		d.ReminderLog = []ReminderLogEntry{}
	}
	if d.FourHourLog == nil {
		d.FourHourLog = []EscalationLogEntry{}
	}
	if d.CriticalLog == nil {
		d.CriticalLog = []EscalationLogEntry{}
	}
	if d.MissedReports == nil {
		d.MissedReports = []MissedReportEntry{}
	}
}

// ProjectByID returns the project with the given id, or nil.
func (d *Document) ProjectByID(id int64) *project.Project {
	for _, p := range d.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ProjectByThread returns the project bound to the given thread channel, or
// nil.
func (d *Document) ProjectByThread(threadChannelID string) *project.Project {
	for _, p := range d.Projects {
		if p.ThreadChannelID == threadChannelID {
			return p
		}
	}
	return nil
}

// NextProjectID returns the id to assign to a newly created project.
func (d *Document) NextProjectID() int64 {
	var max int64
	for _, p := range d.Projects {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// NextReportID returns the id to assign to a newly submitted report.
func (d *Document) NextReportID() int64 {
	var max int64
	for _, r := range d.DailyReports {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// ReportByID returns the report with the given id, or nil.
func (d *Document) ReportByID(id int64) *report.DailyReport {
	for _, r := range d.DailyReports {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// HasReportOn reports whether any report exists for the project on the given
// civil date. Multiple same-day submissions are allowed; only existence
// matters for reminder suppression.
func (d *Document) HasReportOn(projectID int64, date string) bool {
	for _, r := range d.DailyReports {
		if r.ProjectID == projectID && r.ReportDate == date {
			return true
		}
	}
	return false
}

// HasAnyReport reports whether the project has ever received a report.
func (d *Document) HasAnyReport(projectID int64) bool {
	for _, r := range d.DailyReports {
		if r.ProjectID == projectID {
			return true
		}
	}
	return false
}

// FirstReportDate returns the earliest report date for the project, or ""
// when it has no reports. Civil-date strings compare lexicographically.
func (d *Document) FirstReportDate(projectID int64) string {
	first := ""
	for _, r := range d.DailyReports {
		if r.ProjectID != projectID {
			continue
		}
		if first == "" || r.ReportDate < first {
			first = r.ReportDate
		}
	}
	return first
}

// LatestReport returns the most recent report for the project by report
// date, or nil.
func (d *Document) LatestReport(projectID int64) *report.DailyReport {
	var latest *report.DailyReport
	for _, r := range d.DailyReports {
		if r.ProjectID != projectID {
			continue
		}
		if latest == nil || r.ReportDate > latest.ReportDate {
			latest = r
		}
	}
	return latest
}

// AlreadyReminded reports whether a reminder log entry exists for the
// project/day/hour slot.
func (d *Document) AlreadyReminded(projectID int64, date string, hour int) bool {
	for _, e := range d.ReminderLog {
		if e.ProjectID == projectID && e.CTDate == date && e.CTHour == hour {
			return true
		}
	}
	return false
}

// LogReminder records a reminder log entry for the project/day/hour slot.
// Returns false when the entry already existed.
func (d *Document) LogReminder(projectID int64, date string, hour int) bool {
	if d.AlreadyReminded(projectID, date, hour) {
		return false
	}
	d.ReminderLog = append(d.ReminderLog, ReminderLogEntry{ProjectID: projectID, CTDate: date, CTHour: hour})
	return true
}

// FourHourLoggedOn reports whether the tier-1 escalation already fired for
// the project on the given day.
func (d *Document) FourHourLoggedOn(projectID int64, date string) bool {
	return escalationLogged(d.FourHourLog, projectID, date)
}

// LogFourHour records the tier-1 escalation for the day. Returns false when
// already recorded.
func (d *Document) LogFourHour(projectID int64, date string) bool {
	if d.FourHourLoggedOn(projectID, date) {
		return false
	}
	d.FourHourLog = append(d.FourHourLog, EscalationLogEntry{ProjectID: projectID, CTDate: date})
	return true
}

// CriticalLoggedOn reports whether the tier-2 escalation already fired for
// the project on the given day.
func (d *Document) CriticalLoggedOn(projectID int64, date string) bool {
	return escalationLogged(d.CriticalLog, projectID, date)
}

// LogCritical records the tier-2 escalation for the day. Returns false when
// already recorded.
func (d *Document) LogCritical(projectID int64, date string) bool {
	if d.CriticalLoggedOn(projectID, date) {
		return false
	}
	d.CriticalLog = append(d.CriticalLog, EscalationLogEntry{ProjectID: projectID, CTDate: date})
	return true
}

func escalationLogged(log []EscalationLogEntry, projectID int64, date string) bool {
	for _, e := range log {
		if e.ProjectID == projectID && e.CTDate == date {
			return true
		}
	}
	return false
}

// AddMissedDay records a missed-report day for the project, once per
// project/date. Returns false when already recorded.
func (d *Document) AddMissedDay(projectID int64, date string) bool {
	for _, m := range d.MissedReports {
		if m.ProjectID == projectID && m.CTDate == date {
			return false
		}
	}
	d.MissedReports = append(d.MissedReports, MissedReportEntry{ProjectID: projectID, CTDate: date})
	return true
}

// CountMissed returns how many missed-report days the project has
// accumulated.
func (d *Document) CountMissed(projectID int64) int {
	n := 0
	for _, m := range d.MissedReports {
		if m.ProjectID == projectID {
			n++
		}
	}
	return n
}

// SummaryProjects returns the projects that appear in the daily summary:
// everything not paused, plus completed projects still flagged for tracking.
func (d *Document) SummaryProjects() []*project.Project {
	out := make([]*project.Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		if !p.Paused || (p.CompletedAt != "" && p.TrackedInSummary()) {
			out = append(out, p)
		}
	}
	return out
}
