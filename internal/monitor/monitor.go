// Package monitor drives the perpetual scan loop: day rollover,
// pre-game window detection, refresh + reconcile + alert, and slate
// persistence.
//
// One logical thread of control: a single ticker-driven loop owns the
// store file and all scheduling state. No cycle failure is fatal; the
// loop runs until its context is cancelled.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tomasvidela/consensus-alerts/internal/event"
	"github.com/tomasvidela/consensus-alerts/internal/metrics"
	"github.com/tomasvidela/consensus-alerts/internal/notify"
	"github.com/tomasvidela/consensus-alerts/internal/reconcile"
	"github.com/tomasvidela/consensus-alerts/internal/source"
	"github.com/tomasvidela/consensus-alerts/internal/store"
)

const dateLayout = "2006-01-02"

// Config holds the monitor's scheduling knobs.
type Config struct {
	RolloverHour int            // local hour after which a new day's slate is rebuilt
	WindowLow    int            // minutes before start, inclusive lower bound
	WindowHigh   int            // minutes before start, inclusive upper bound
	ScanInterval time.Duration  // cycle period
	Location     *time.Location // operating timezone
}

// Monitor owns the day's slate and walks it once per cycle.
type Monitor struct {
	cfg      Config
	store    *store.Store
	source   source.Source
	notifier notify.Notifier
	logger   *slog.Logger

	now func() time.Time

	// Scheduling state per the day-rollover rule. lastFetchDate is the
	// calendar date of the last successful full rebuild, empty until
	// the startup build succeeds.
	lastFetchDate string
	fetchedToday  bool

	// handled guards at-most-once alerting when a save fails between
	// marking a record alerted and the next load.
	handled map[string]struct{}
}

// New creates a monitor. cfg fields left zero fall back to the
// original operating values: 10 o'clock rollover, 14-16 minute window,
// 60 second scan period.
func New(cfg Config, st *store.Store, src source.Source, n notify.Notifier, logger *slog.Logger) *Monitor {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = time.Minute
	}
	if cfg.WindowLow == 0 && cfg.WindowHigh == 0 {
		cfg.WindowLow, cfg.WindowHigh = 14, 16
	}
	if cfg.RolloverHour == 0 {
		cfg.RolloverHour = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:      cfg,
		store:    st,
		source:   src,
		notifier: n,
		logger:   logger,
		now:      time.Now,
		handled:  make(map[string]struct{}),
	}
}

// Run builds the startup slate and then scans until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	if err := m.Refresh(ctx); err != nil {
		m.logger.Error("Startup slate build failed, retrying next cycle", "error", err)
	}

	m.logger.Info("Monitor started",
		"interval", m.cfg.ScanInterval,
		"window_low_min", m.cfg.WindowLow,
		"window_high_min", m.cfg.WindowHigh,
		"rollover_hour", m.cfg.RolloverHour,
		"timezone", m.cfg.Location.String())

	ticker := time.NewTicker(m.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cycle(ctx)
		case <-ctx.Done():
			m.logger.Info("Monitor stopped")
			return
		}
	}
}

// Refresh rebuilds the slate from the source: every record starts
// unalerted, the slate is persisted, and one informational message
// goes out per event. On success the rollover state advances so the
// rebuild runs once per calendar day.
func (m *Monitor) Refresh(ctx context.Context) error {
	now := m.now().In(m.cfg.Location)

	events, err := m.source.Fetch(ctx, now)
	if err != nil {
		metrics.FetchFailures.Inc()
		return fmt.Errorf("fetch slate: %w", err)
	}
	for i := range events {
		events[i].Alerted = false
	}

	if err := m.store.Save(events); err != nil {
		metrics.StoreFailures.Inc()
		return fmt.Errorf("save slate: %w", err)
	}

	for _, ev := range events {
		if err := m.notifier.Send(ctx, InfoMessage(ev)); err != nil {
			metrics.NotifyFailures.Inc()
			m.logger.Warn("Slate message delivery failed", "matchup", ev.Matchup(), "error", err)
		} else {
			metrics.InfoSent.Inc()
		}
	}

	m.lastFetchDate = now.Format(dateLayout)
	m.fetchedToday = true
	m.handled = make(map[string]struct{})
	m.logger.Info("Slate rebuilt", "date", m.lastFetchDate, "events", len(events))
	return nil
}

// Cycle runs one scan: rollover check, due-window detection, a single
// re-fetch when anything is due, reconcile + alert, persist.
func (m *Monitor) Cycle(ctx context.Context) {
	metrics.Cycles.Inc()
	now := m.now().In(m.cfg.Location)

	m.maybeRollover(ctx, now)

	events, err := m.store.Load()
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			m.logger.Warn("Stored slate unreadable, treating as empty; file kept for inspection", "error", err)
			events = nil
		} else {
			m.logger.Error("Slate load failed, skipping cycle", "error", err)
			return
		}
	}

	// Re-apply alerted flags that a failed save left undurable.
	for i := range events {
		if _, ok := m.handled[events[i].Key()]; ok {
			events[i].Alerted = true
		}
	}

	dueCount := 0
	for i := range events {
		if m.due(events[i], now) {
			dueCount++
		}
	}
	if dueCount == 0 {
		return
	}

	// One re-fetch covers every due event this cycle. Failure falls
	// back to the stored data rather than suppressing the alerts.
	fresh, err := m.source.Fetch(ctx, now)
	if err != nil {
		metrics.FetchFailures.Inc()
		m.logger.Warn("Pre-alert refresh failed, alerting with stored data", "error", err)
		fresh = nil
	}

	changed := false
	for i := range events {
		if !m.due(events[i], now) {
			continue
		}

		rec := events[i]
		if match, ok := reconcile.Match(rec, fresh); ok {
			rec = match
		} else {
			metrics.ReconcileFallbacks.Inc()
			m.logger.Warn("No fresh record matched, alerting with stored data", "matchup", rec.Matchup())
		}

		if err := m.notifier.Send(ctx, AlertMessage(rec)); err != nil {
			metrics.NotifyFailures.Inc()
			m.logger.Warn("Alert delivery failed", "matchup", rec.Matchup(), "error", err)
		} else {
			metrics.AlertsSent.Inc()
			m.logger.Info("Alert sent", "matchup", rec.Matchup(), "start", events[i].EventTime)
		}

		// Handled once the window fired, even when delivery failed.
		events[i].Alerted = true
		m.handled[events[i].Key()] = struct{}{}
		changed = true
	}

	if changed {
		if err := m.store.Save(events); err != nil {
			metrics.StoreFailures.Inc()
			m.logger.Error("Slate save failed, alerted flags held in memory until next save", "error", err)
		}
	}
}

// maybeRollover performs the once-per-day slate rebuild. A rebuild is
// due when the calendar date changed and the clock passed the
// configured hour; fetchedToday guards re-entry when several cycles
// land past the threshold on the same day. An empty lastFetchDate
// means the startup build never succeeded, so it retries every cycle.
func (m *Monitor) maybeRollover(ctx context.Context, now time.Time) {
	today := now.Format(dateLayout)
	switch {
	case m.lastFetchDate == "":
		if err := m.Refresh(ctx); err != nil {
			m.logger.Warn("Slate rebuild failed, retrying next cycle", "error", err)
		}
	case today != m.lastFetchDate && now.Hour() >= m.cfg.RolloverHour && !m.fetchedToday:
		m.logger.Info("New day detected, rebuilding slate", "date", today)
		if err := m.Refresh(ctx); err != nil {
			m.logger.Warn("Slate rebuild failed, retrying next cycle", "error", err)
		}
	case today != m.lastFetchDate && now.Hour() < m.cfg.RolloverHour:
		// Arms the rebuild for when the hour threshold is crossed.
		m.fetchedToday = false
	}
}

// due reports whether the record sits inside the pre-game window:
// WindowLow <= minutes-to-start <= WindowHigh and not yet alerted.
// Records whose date or time do not parse never become due.
func (m *Monitor) due(r event.Record, now time.Time) bool {
	if r.Alerted {
		return false
	}
	start, ok := r.StartTime(m.cfg.Location)
	if !ok {
		return false
	}
	mins := start.Sub(now).Minutes()
	return mins >= float64(m.cfg.WindowLow) && mins <= float64(m.cfg.WindowHigh)
}
