package project

import (
	"strconv"
	"strings"
	"time"
)

// DefaultReminderHour is used when a project's reminder time is missing or
// cannot be parsed.
const DefaultReminderHour = 19

// Project represents one tracked construction job. Projects are never
// physically deleted; closing is a soft state.
type Project struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ThreadChannelID string `json:"thread_channel_id,omitempty"`

	ForemanUserID  string `json:"foreman_user_id,omitempty"`
	ForemanDisplay string `json:"foreman_display,omitempty"`

	// Status holds the raw stored value; consumers must go through
	// Normalize before comparing against the canonical set.
	Status         string `json:"status,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	AnticipatedEnd string `json:"anticipated_end,omitempty"`
	CompletedAt    string `json:"completed_at,omitempty"`

	IsClosed     bool   `json:"is_closed,omitempty"`
	ClosedAt     string `json:"closed_at,omitempty"`
	ClosedBy     string `json:"closed_by,omitempty"`
	ClosedReason string `json:"closed_reason,omitempty"`

	ReminderTime   string `json:"reminder_time,omitempty"`
	ReminderActive *bool  `json:"reminder_active,omitempty"`
	Paused         bool   `json:"paused,omitempty"`

	LastReportDate     string `json:"last_report_date,omitempty"`
	LastReportDateTime string `json:"last_report_datetime,omitempty"`

	TrackInSummary *bool `json:"track_in_summary,omitempty"`
}

// ReminderEnabled reports whether reminders are on for this project.
// Absence of the flag in the data file means enabled.
func (p *Project) ReminderEnabled() bool {
	return p.ReminderActive == nil || *p.ReminderActive
}

// TrackedInSummary reports whether the project appears in daily summaries.
// Absence of the flag means tracked.
func (p *Project) TrackedInSummary() bool {
	return p.TrackInSummary == nil || *p.TrackInSummary
}

// ReminderHour parses the hour component of the configured reminder time
// ("HH:MM"). Unparseable or out-of-range values fall back to
// DefaultReminderHour.
func (p *Project) ReminderHour() int {
	raw := p.ReminderTime
	if raw == "" {
		return DefaultReminderHour
	}
	hourPart, _, _ := strings.Cut(raw, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || h < 0 || h > 23 {
		return DefaultReminderHour
	}
	return h
}

// SetStatus is the single transition point for status changes. Transitions
// are permissive: any status may be set over any other. The value is stored
// lowercased and trimmed; normalization to the canonical set happens on read.
func (p *Project) SetStatus(status string) {
	p.Status = strings.ToLower(strings.TrimSpace(status))
}

// Close marks the project closed. The closed_* fields are always set
// together. An empty or legacy "open" status is coerced to "closed" so the
// stored status reads consistently with the closed flag.
func (p *Project) Close(reason, closedBy string, at time.Time) {
	p.IsClosed = true
	p.ClosedReason = reason
	p.ClosedBy = closedBy
	p.ClosedAt = at.UTC().Format(time.RFC3339)
	if p.Status == "" || p.Status == "open" {
		p.Status = "closed"
	}
}

// Reopen reverses Close, clearing the closed_* fields together.
func (p *Project) Reopen(reopenedBy string) {
	p.IsClosed = false
	p.ClosedReason = ""
	p.ClosedBy = reopenedBy
	p.ClosedAt = ""
	if p.Status == "closed" || p.Status == "" {
		p.Status = "open"
	}
}

// LastReportInstant resolves the instant of the most recent report, falling
// back to last_report_date at midnight in loc when the finer timestamp is
// absent. The second return value is false when neither field is usable.
func (p *Project) LastReportInstant(loc *time.Location) (time.Time, bool) {
	if p.LastReportDateTime != "" {
		if t, err := time.Parse(time.RFC3339, p.LastReportDateTime); err == nil {
			return t, true
		}
	}
	if p.LastReportDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", p.LastReportDate, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
