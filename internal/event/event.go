// Package event defines the tracked event record plus the field
// normalization and start-time parsing rules shared by the store,
// reconciler, and monitor.
package event

import (
	"strings"
	"time"
)

// startLayouts are tried in order when combining EventDate and EventTime
// into a wall-clock start. A record whose fields match none of them is
// inert: it never enters the alert window and never alerts.
var startLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-1-2 15:04",
}

// Record is one tracked sporting event and its alert state. The slate
// of records is rebuilt wholesale once per day; Alerted is the only
// field mutated in place after construction.
type Record struct {
	Sport       string `json:"sport"`
	TeamHome    string `json:"team_home"`
	TeamAway    string `json:"team_away"`
	EventDate   string `json:"event_date"` // ISO 8601 date
	EventTime   string `json:"event_time"` // 24-hour HH:MM, operating timezone
	TotalLine   string `json:"total_line"`
	PctOver     *int   `json:"pct_over"`
	PctUnder    *int   `json:"pct_under"`
	ExpertCount int    `json:"expert_count"`
	Alerted     bool   `json:"alerted"`
}

// StartTime combines EventDate and EventTime in loc. ok is false when
// the fields do not parse; callers skip such records instead of
// treating them as errors.
func (r Record) StartTime(loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(r.EventDate) + " " + strings.TrimSpace(r.EventTime)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matchup returns the display pairing used in outbound messages.
func (r Record) Matchup() string {
	return r.TeamHome + " vs " + r.TeamAway
}

// Key returns the normalized identity of the record within one day's
// slate: home, away, date, and time. Team names arrive as scraped, so
// comparisons always go through Normalize.
func (r Record) Key() string {
	return Normalize(r.TeamHome) + "|" + Normalize(r.TeamAway) + "|" +
		Normalize(r.EventDate) + "|" + Normalize(r.EventTime)
}

// Normalize maps a free-text field to its comparison form: surrounding
// whitespace trimmed, case folded.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
