package covers

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"
)

func newTestClient() *Client {
	return New("mlb", time.Hour, 20, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

const rowTemplate = `
<tr>
  <td>
    <span class="covers-CoversConsensus-table--teamBlock"><a href="/team/1">%s</a></span>
    <span class="covers-CoversConsensus-table--teamBlock2"><a href="/team/2">%s</a></span>
  </td>
  <td>%s</td>
  <td><span>%d%% Over</span><span>%d%% Under</span></td>
  <td>%s</td>
  <td>5<br>3</td>
</tr>`

func pageWith(rows ...string) string {
	page := `<table class="covers-CoversConsensus-table"><tr><th>Matchup</th></tr>`
	for _, r := range rows {
		page += r
	}
	return page + `</table>`
}

func TestParseSlate(t *testing.T) {
	c := newTestClient()
	page := pageWith(
		fmt.Sprintf(rowTemplate, "NYY", "BOS", "Sat Aug 2 1:05 pm ET", 62, 38, "8.5"),
		fmt.Sprintf(rowTemplate, "LAD", "SF", "Sat Aug 2 7:10 pm ET", 40, 60, "9"),
	)

	records := c.parseSlate(page)
	if len(records) != 2 {
		t.Fatalf("parsed %d records, want 2", len(records))
	}

	r := records[0]
	if r.Sport != "MLB" {
		t.Errorf("sport = %q", r.Sport)
	}
	if r.TeamHome != "NYY" || r.TeamAway != "BOS" {
		t.Errorf("matchup = %q vs %q", r.TeamHome, r.TeamAway)
	}
	// 1:05 pm ET shifted one hour into the operating timezone.
	if r.EventTime != "14:05" {
		t.Errorf("event_time = %q, want 14:05", r.EventTime)
	}
	wantDate := fmt.Sprintf("%d-08-02", time.Now().Year())
	if r.EventDate != wantDate {
		t.Errorf("event_date = %q, want %s", r.EventDate, wantDate)
	}
	if r.PctOver == nil || *r.PctOver != 62 {
		t.Errorf("pct_over = %v, want 62", r.PctOver)
	}
	if r.PctUnder == nil || *r.PctUnder != 38 {
		t.Errorf("pct_under = %v, want 38", r.PctUnder)
	}
	if r.TotalLine != "8.5" {
		t.Errorf("total_line = %q, want 8.5", r.TotalLine)
	}
	if r.ExpertCount != 8 {
		t.Errorf("expert_count = %d, want 8 (5+3)", r.ExpertCount)
	}
	if r.Alerted {
		t.Error("fresh records must start unalerted")
	}
}

func TestParseSlateSkipsHeaderAndBareRows(t *testing.T) {
	c := newTestClient()
	page := pageWith(
		`<tr><td>no matchup here</td></tr>`,
		fmt.Sprintf(rowTemplate, "CHC", "STL", "Sun Aug 3 2:20 pm ET", 51, 49, "7"),
	)

	records := c.parseSlate(page)
	if len(records) != 1 || records[0].TeamHome != "CHC" {
		t.Errorf("expected a single CHC record, got %+v", records)
	}
}

func TestParseKickoffDottedVariant(t *testing.T) {
	c := newTestClient()
	date, hhmm := c.parseKickoff("Sat. Aug. 2 1:05 pm ET")
	if date == "" || hhmm != "14:05" {
		t.Errorf("dotted kickoff parsed as %q %q", date, hhmm)
	}
}

func TestParseKickoffUnparsableIsInert(t *testing.T) {
	c := newTestClient()
	date, hhmm := c.parseKickoff("sometime soon pm ET")
	if date != "" || hhmm != "" {
		t.Errorf("unparsable kickoff should leave fields empty, got %q %q", date, hhmm)
	}
}
