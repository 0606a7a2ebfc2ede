// Package metrics exposes prometheus counters for the monitor loop.
// Everything registers on the default registry and is served by the
// status server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Cycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "cycles_total",
		Help:      "Completed scan cycles.",
	})
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "fetch_failures_total",
		Help:      "Slate fetches that failed and were skipped.",
	})
	AlertsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "alerts_sent_total",
		Help:      "Pre-game alerts delivered.",
	})
	InfoSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "info_sent_total",
		Help:      "Informational slate messages delivered.",
	})
	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "notify_failures_total",
		Help:      "Outbound messages that failed to deliver.",
	})
	ReconcileFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "reconcile_fallbacks_total",
		Help:      "Alerts sent with stale data because no fresh record matched.",
	})
	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consensus",
		Subsystem: "monitor",
		Name:      "store_failures_total",
		Help:      "Slate persistence failures.",
	})
)
