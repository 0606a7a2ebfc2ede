package reconcile

import (
	"testing"

	"github.com/tomasvidela/consensus-alerts/internal/event"
)

func intPtr(n int) *int { return &n }

func TestMatchNormalizedFields(t *testing.T) {
	stale := event.Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05"}
	fresh := []event.Record{
		{TeamHome: "LAD", TeamAway: "SF", EventDate: "2025-07-27", EventTime: "19:10"},
		{TeamHome: " nyy ", TeamAway: "Bos", EventDate: "2025-07-27", EventTime: "14:05", PctOver: intPtr(62)},
	}

	got, ok := Match(stale, fresh)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.PctOver == nil || *got.PctOver != 62 {
		t.Errorf("matched the wrong record: %+v", got)
	}
}

func TestMatchFirstWinsInSourceOrder(t *testing.T) {
	stale := event.Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05"}
	fresh := []event.Record{
		{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05", ExpertCount: 1},
		{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05", ExpertCount: 2},
	}

	got, ok := Match(stale, fresh)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ExpertCount != 1 {
		t.Errorf("expected the first fresh record, got %+v", got)
	}
}

func TestMatchRequiresEveryKeyField(t *testing.T) {
	stale := event.Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05"}
	fresh := []event.Record{
		// Same teams and time, different day: a doubleheader on another
		// date must not be mistaken for this game.
		{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-28", EventTime: "14:05"},
		// Same teams and date, different start time.
		{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "19:05"},
	}

	if _, ok := Match(stale, fresh); ok {
		t.Error("expected no match when any key field differs")
	}
}

func TestMatchEmptyFreshList(t *testing.T) {
	stale := event.Record{TeamHome: "NYY", TeamAway: "BOS", EventDate: "2025-07-27", EventTime: "14:05"}
	if _, ok := Match(stale, nil); ok {
		t.Error("expected no match against an empty slate")
	}
}
