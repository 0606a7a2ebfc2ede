package event

import (
	"testing"
	"time"
)

func TestStartTime(t *testing.T) {
	r := Record{EventDate: "2025-07-27", EventTime: "14:05"}
	start, ok := r.StartTime(time.UTC)
	if !ok {
		t.Fatal("expected parsable start time")
	}
	want := time.Date(2025, 7, 27, 14, 5, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
}

func TestStartTimeTrimsFields(t *testing.T) {
	r := Record{EventDate: " 2025-07-27 ", EventTime: " 09:30 "}
	if _, ok := r.StartTime(time.UTC); !ok {
		t.Error("expected padded fields to parse")
	}
}

func TestStartTimeInert(t *testing.T) {
	cases := []Record{
		{EventDate: "", EventTime: ""},
		{EventDate: "2025-07-27", EventTime: ""},
		{EventDate: "", EventTime: "14:05"},
		{EventDate: "July 27", EventTime: "2 pm"},
		{EventDate: "2025-13-40", EventTime: "99:99"},
	}
	for _, r := range cases {
		if _, ok := r.StartTime(time.UTC); ok {
			t.Errorf("record %q %q should be inert", r.EventDate, r.EventTime)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		" NyY ":       "nyy",
		"Bos":         "bos",
		"":            "",
		"  ":          "",
		"2025-07-27":  "2025-07-27",
		"\tRed Sox\n": "red sox",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyMatchesAcrossCaseAndSpace(t *testing.T) {
	a := Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05"}
	b := Record{TeamHome: " nyy ", TeamAway: "Bos", EventDate: "2025-07-27", EventTime: "14:05"}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
	c := Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "19:05"}
	if a.Key() == c.Key() {
		t.Error("different start times must not share a key")
	}
}
