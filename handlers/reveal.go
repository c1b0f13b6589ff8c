// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/santa-draw/auth"
	"github.com/danielhkuo/santa-draw/cliparse"
	"github.com/danielhkuo/santa-draw/middleware"
	"github.com/danielhkuo/santa-draw/models"
)

type RevealHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRevealHandler(db *sql.DB, cfg cliparse.Config) *RevealHandler {
	return &RevealHandler{db: db, cfg: cfg}
}

func publicEvent(e models.Event, participantCount int) models.PublicEvent {
	return models.PublicEvent{
		Name:             e.Name,
		EventDate:        e.EventDate,
		EventTime:        e.EventTime,
		Location:         e.Location,
		Budget:           e.Budget,
		OrganizerName:    e.OrganizerName,
		ParticipantCount: participantCount,
		Drawn:            e.Status == models.StatusDrawn,
	}
}

func (h *RevealHandler) participantCount(r *http.Request, eventID string) (int, error) {
	var count int
	err := h.db.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM participant WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

// GetEvent handles GET /e/{slug}
func (h *RevealHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	ctx := r.Context()
	event, err := getEventBySlug(ctx, h.db, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := h.participantCount(r, event.ID)
	if err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, publicEvent(event, count))
}

// GetMyMatch handles GET /e/{slug}/my-match
// Requires X-Participant-Token; only reveals the caller's own receiver
func (h *RevealHandler) GetMyMatch(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Participant-Token header required")
		return
	}
	if err := auth.CheckParticipantToken(token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}

	ctx := r.Context()
	event, err := getEventBySlug(ctx, h.db, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var giverID, giverName string
	err = h.db.QueryRowContext(ctx, `
		SELECT id, name FROM participant WHERE event_id = $1 AND token = $2
	`, event.ID, token).Scan(&giverID, &giverName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if event.Status != models.StatusDrawn {
		middleware.ErrorResponse(w, http.StatusConflict, "Names have not been drawn yet")
		return
	}

	var receiverName string
	err = h.db.QueryRowContext(ctx, `
		SELECT r.name
		FROM assignment a
		JOIN participant r ON r.id = a.receiver_id
		WHERE a.event_id = $1 AND a.giver_id = $2
	`, event.ID, giverID).Scan(&receiverName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No match found")
		return
	}
	if err != nil {
		slog.Error("failed to query match", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := h.participantCount(r, event.ID)
	if err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("match revealed", "event_id", event.ID, "participant_id", giverID)

	middleware.JSONResponse(w, http.StatusOK, models.MyMatchResponse{
		Event:    publicEvent(event, count),
		Giver:    giverName,
		Receiver: receiverName,
	})
}
