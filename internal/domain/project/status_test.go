package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tt
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Status
	}{
		{"canonical passthrough", "in_progress", StatusInProgress},
		{"uppercase", "IN_PROGRESS", StatusInProgress},
		{"hyphens", "in-progress", StatusInProgress},
		{"spaces", "on hold", StatusOnHold},
		{"mixed separators", "Complete  No-Gobacks", StatusCompleteNoGobacks},
		{"leading and trailing whitespace", "  upcoming  ", StatusUpcoming},
		{"legacy started", "started", StatusUpcoming},
		{"legacy open", "open", StatusInProgress},
		{"legacy blocked", "blocked", StatusOnHold},
		{"legacy hold", "hold", StatusOnHold},
		{"legacy onhold", "onhold", StatusOnHold},
		{"legacy closed", "closed", StatusCompleteNoGobacks},
		{"empty", "", StatusUpcoming},
		{"garbage", "definitely not a status", StatusUpcoming},
		{"numeric garbage", "1234", StatusUpcoming},
		{"leaving incomplete with spaces", "Leaving Incomplete", StatusLeavingIncomplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeTotality(t *testing.T) {
	inputs := []string{"", " ", "\t", "???", "OPEN", "-", "___", "status: weird", "ЗАКРЫТ", "🟦"}
	for _, in := range inputs {
		got := Normalize(in)
		assert.True(t, canonicalStatuses[got], "Normalize(%q) = %q is not canonical", in, got)
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	inputs := []string{"started", "open", "blocked", "closed", "On Hold", "in-progress", "", "junk"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(string(once))
		assert.Equal(t, once, twice, "Normalize not idempotent for %q", in)
	}
}

func TestReminderHour(t *testing.T) {
	cases := []struct {
		time string
		want int
	}{
		{"08:00", 8},
		{"19:00", 19},
		{"00:30", 0},
		{"23:59", 23},
		{"", DefaultReminderHour},
		{"abc", DefaultReminderHour},
		{"25:00", DefaultReminderHour},
		{"-1:00", DefaultReminderHour},
	}
	for _, tc := range cases {
		p := &Project{ReminderTime: tc.time}
		assert.Equal(t, tc.want, p.ReminderHour(), "reminder_time=%q", tc.time)
	}
}

func TestCloseAndReopenPairFields(t *testing.T) {
	p := &Project{ID: 1, Status: "open"}

	p.Close("job finished", "user-1", mustTime(t, "2024-03-01T12:00:00Z"))
	assert.True(t, p.IsClosed)
	assert.Equal(t, "job finished", p.ClosedReason)
	assert.Equal(t, "user-1", p.ClosedBy)
	assert.NotEmpty(t, p.ClosedAt)
	assert.Equal(t, "closed", p.Status)

	p.Reopen("user-2")
	assert.False(t, p.IsClosed)
	assert.Empty(t, p.ClosedReason)
	assert.Empty(t, p.ClosedAt)
	assert.Equal(t, "user-2", p.ClosedBy)
	assert.Equal(t, "open", p.Status)
}
