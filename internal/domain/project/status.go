package project

import "strings"

// Status is the canonical lifecycle state of a project.
type Status string

const (
	StatusUpcoming          Status = "upcoming"
	StatusInProgress        Status = "in_progress"
	StatusOnHold            Status = "on_hold"
	StatusLeavingIncomplete Status = "leaving_incomplete"
	StatusCompleteNoGobacks Status = "complete_no_gobacks"
)

var canonicalStatuses = map[Status]bool{
	StatusUpcoming:          true,
	StatusInProgress:        true,
	StatusOnHold:            true,
	StatusLeavingIncomplete: true,
	StatusCompleteNoGobacks: true,
}

// Normalize coerces an arbitrary status string into one of the canonical
// Status values. It is total: any input, including the empty string, maps to
// a valid state. Legacy spellings from older data files are accepted as
// aliases; anything unrecognized falls back to StatusUpcoming.
func Normalize(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}

	if canonicalStatuses[Status(key)] {
		return Status(key)
	}

	switch key {
	case "started":
		return StatusUpcoming
	case "open":
		return StatusInProgress
	case "blocked", "hold", "onhold":
		return StatusOnHold
	case "closed":
		return StatusCompleteNoGobacks
	}
	return StatusUpcoming
}

// Label returns the human-readable form used in summaries and alerts.
func (s Status) Label() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusInProgress:
		return "In Progress"
	case StatusOnHold:
		return "On Hold"
	case StatusLeavingIncomplete:
		return "Leaving & Incomplete"
	case StatusCompleteNoGobacks:
		return "100% Complete – No Gobacks"
	default:
		return "Upcoming"
	}
}

// Icon returns the marker shown next to the status in channel messages.
func (s Status) Icon() string {
	switch s {
	case StatusUpcoming:
		return "🟦"
	case StatusInProgress:
		return "▶️"
	case StatusOnHold:
		return "⏸️"
	case StatusLeavingIncomplete:
		return "🚚"
	case StatusCompleteNoGobacks:
		return "✅"
	default:
		return "🟦"
	}
}
