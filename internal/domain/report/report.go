package report

// DailyReport is one progress submission for a project on a given calendar
// day. Reports are immutable after creation except for Triggers, which may be
// amended later.
type DailyReport struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	// ReportDate is the civil date (YYYY-MM-DD) the report covers;
	// CreatedAt is the RFC3339 submission instant.
	ReportDate string `json:"report_date"`
	CreatedAt  string `json:"created_at,omitempty"`

	PercentComplete int     `json:"percent_complete"`
	ManCount        int     `json:"man_count"`
	ManHours        float64 `json:"man_hours"`
	CumManHours     float64 `json:"cum_man_hours,omitempty"`
	HealthScore     int     `json:"health_score,omitempty"`
	Synopsis        string  `json:"synopsis,omitempty"`

	Triggers []string `json:"triggers,omitempty"`
}

// TriggerEvent records one occurrence of a category tag (materials, lodging,
// RFI, ...) against a project, optionally tied to the report that raised it.
type TriggerEvent struct {
	ProjectID    int64  `json:"project_id"`
	ReportID     int64  `json:"report_id,omitempty"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at"`
	AuthorUserID string `json:"author_user_id,omitempty"`
}
