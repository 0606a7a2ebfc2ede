// Package source defines the contract the monitor uses to obtain the
// day's consensus slate.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/tomasvidela/consensus-alerts/internal/event"
)

// ErrFetch wraps any transport or parse failure so callers can tell a
// failed fetch apart from a day with no games. A fetch failure is
// always recoverable: the monitor logs it and retries on the next
// cycle.
var ErrFetch = errors.New("fetch failed")

// Source returns the consensus slate for a calendar day, in page
// order. An empty slice with a nil error means the day has no games.
type Source interface {
	Fetch(ctx context.Context, day time.Time) ([]event.Record, error)
}
