// Package reconcile matches a stored event against a freshly fetched
// slate so a pre-game alert carries up-to-date consensus numbers.
package reconcile

import (
	"github.com/tomasvidela/consensus-alerts/internal/event"
)

// Match returns the first fresh record, in source order, whose
// normalized identity key (home, away, date, time) equals the stale
// record's. ok is false when nothing matches; the caller then alerts
// with the stale data — staleness is preferred over silence.
func Match(stale event.Record, fresh []event.Record) (event.Record, bool) {
	staleKey := stale.Key()
	for _, f := range fresh {
		if f.Key() == staleKey {
			return f, true
		}
	}
	return event.Record{}, false
}
