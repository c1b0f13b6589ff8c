// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/santa-draw/cliparse"
	"github.com/danielhkuo/santa-draw/handlers"
	"github.com/danielhkuo/santa-draw/middleware"
	"github.com/danielhkuo/santa-draw/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg)
	drawHandler := handlers.NewDrawHandler(db, cfg, notifier)
	revealHandler := handlers.NewRevealHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event setup (organizer)
	mux.HandleFunc("POST /events/check", middleware.WithLogging(eventHandler.CheckEvent))
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}/admin", middleware.WithLogging(eventHandler.GetEventAdmin))

	// Drawing names (organizer, requires X-Admin-Key)
	mux.HandleFunc("POST /events/{id}/draw", middleware.WithLogging(drawHandler.DrawEvent))
	mux.HandleFunc("GET /events/{id}/matches", middleware.WithLogging(drawHandler.GetMatches))

	// Reveal (participants, via share slug)
	mux.HandleFunc("GET /e/{slug}", middleware.WithLogging(revealHandler.GetEvent))
	mux.HandleFunc("GET /e/{slug}/my-match", middleware.WithLogging(revealHandler.GetMyMatch))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("santa-draw API v1"))
	})

	return mux
}
