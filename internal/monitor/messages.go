package monitor

import (
	"fmt"

	"github.com/tomasvidela/consensus-alerts/internal/event"
)

// Two outbound templates: the informational slate message sent after
// every full fetch and the time-critical pre-game alert. Every field
// is always present; unreported percentages render as 0 so the shape
// stays stable.

// AlertMessage formats the pre-game alert for one event.
func AlertMessage(r event.Record) string {
	return fmt.Sprintf(
		"Sport: %s\nGame: %s\nTime: %s\nTotal: %s\nUnder: %d%%\nOver: %d%%\nPicks: %d",
		r.Sport, r.Matchup(), r.EventTime, r.TotalLine,
		pctOrZero(r.PctUnder), pctOrZero(r.PctOver), r.ExpertCount)
}

// InfoMessage formats the non-time-critical slate message for one event.
func InfoMessage(r event.Record) string {
	return "Daily slate\n" + AlertMessage(r)
}

func pctOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
