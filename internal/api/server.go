// Package api serves the monitor's read-only status endpoints: health,
// the current slate, and prometheus metrics. It never writes to the
// store; the monitor loop stays the single writer.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"

	"github.com/tomasvidela/consensus-alerts/internal/event"
	"github.com/tomasvidela/consensus-alerts/internal/store"
)

// NewRouter creates the Chi router with middleware and routes.
func NewRouter(st *store.Store, corsOrigins []string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5)) // gzip

	c := corslib.New(corslib.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := &handlers{store: st, logger: logger}

	r.Get("/health", h.Health)
	r.Get("/api/v1/events", h.Events)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type handlers struct {
	store  *store.Store
	logger *slog.Logger
}

// Health reports process liveness.
func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Events returns the current stored slate.
func (h *handlers) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.Load()
	if err != nil {
		h.logger.Warn("Status API slate load failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "slate unavailable"})
		return
	}
	if events == nil {
		events = []event.Record{}
	}
	writeJSON(w, http.StatusOK, events)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
