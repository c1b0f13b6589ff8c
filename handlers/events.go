// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/santa-draw/auth"
	"github.com/danielhkuo/santa-draw/cliparse"
	"github.com/danielhkuo/santa-draw/matching"
	"github.com/danielhkuo/santa-draw/middleware"
	"github.com/danielhkuo/santa-draw/models"
)

type EventHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config) *EventHandler {
	return &EventHandler{db: db, cfg: cfg}
}

// dryRun checks the request's exclusions on provisional indices.
// It returns "" when a draw exists, otherwise the reason it does not.
func (h *EventHandler) dryRun(req models.CreateEventRequest) (string, error) {
	_, err := matching.DryRun(len(req.Participants), excludedByIndex(req), solveOptions(h.cfg.MaxAttempts)...)
	if err == nil {
		return "", nil
	}
	if !errors.Is(err, matching.ErrNoSolution) {
		return "", err
	}
	return noSolutionReason(err, func(giver any) string {
		return req.Participants[giver.(int)].Name
	}), nil
}

// CheckEvent handles POST /events/check
// Reports whether the draft can be drawn without writing anything
func (h *EventHandler) CheckEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateEventRequest(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	reason, err := h.dryRun(req)
	if err != nil {
		slog.Error("dry run rejected validated input", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckEventResponse{
		Feasible: reason == "",
		Reason:   reason,
	})
}

// CreateEvent handles POST /events
// The event, participants and exclusions are only written if a draw exists
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateEventRequest(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	reason, err := h.dryRun(req)
	if err != nil {
		slog.Error("dry run rejected validated input", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	if reason != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, reason)
		return
	}

	eventID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate event ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	shareSlug := auth.GenerateShareSlug(eventID, h.cfg.EventSlugSalt)

	participantIDs := make([]string, len(req.Participants))
	tokens := make([]string, len(req.Participants))
	for i := range req.Participants {
		if participantIDs[i], err = auth.NewRowID(); err == nil {
			tokens[i], err = auth.GenerateParticipantToken()
		}
		if err != nil {
			slog.Error("failed to generate participant credentials", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
			return
		}
	}

	ctx := r.Context()

	// Begin transaction
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO event (id, name, organizer_name, organizer_email, event_date, event_time,
			location, budget, status, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, eventID, req.Name, req.OrganizerName, req.OrganizerEmail, req.EventDate, nullIfEmpty(req.EventTime),
		req.Location, req.Budget, models.StatusDraft, shareSlug, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	for i, p := range req.Participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO participant (id, event_id, ordinal, name, email, token)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, participantIDs[i], eventID, i, p.Name, p.Email, tokens[i])
		if err != nil {
			slog.Error("failed to insert participant", "error", err, "event_id", eventID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
			return
		}
	}

	for _, ex := range req.Exclusions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO exclusion (event_id, giver_id, excluded_id)
			VALUES ($1, $2, $3)
		`, eventID, participantIDs[ex.Giver], participantIDs[ex.Excluded])
		if err != nil {
			slog.Error("failed to insert exclusion", "error", err, "event_id", eventID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created",
		"event_id", eventID,
		"participants", len(req.Participants),
		"exclusions", len(req.Exclusions),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID:   eventID,
		AdminKey:  auth.GenerateAdminKey(eventID, h.cfg.AdminKeySalt),
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/e/" + shareSlug,
	})
}

// GetEventAdmin handles GET /events/{id}/admin
func (h *EventHandler) GetEventAdmin(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	ctx := r.Context()
	event, err := getEventByID(ctx, h.db, eventID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participants, err := loadParticipants(ctx, h.db, eventID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	exclusions, err := loadExclusions(ctx, h.db, eventID)
	if err != nil {
		slog.Error("failed to query exclusions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventAdmin{
		Event:        event,
		Participants: participants,
		Exclusions:   exclusions,
		Drawn:        event.Status == models.StatusDrawn,
	})
}
