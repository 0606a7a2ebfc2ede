// Package notify delivers formatted alert messages to the outbound
// channel. Delivery failure never blocks or reverses the monitor's
// state transitions; an event counts as handled once its window fires.
package notify

import "context"

// Notifier sends one pre-formatted text block.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
