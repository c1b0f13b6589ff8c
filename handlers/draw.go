// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/santa-draw/auth"
	"github.com/danielhkuo/santa-draw/cliparse"
	"github.com/danielhkuo/santa-draw/matching"
	"github.com/danielhkuo/santa-draw/middleware"
	"github.com/danielhkuo/santa-draw/models"
	"github.com/danielhkuo/santa-draw/notify"
)

var errEventNotFound = errors.New("event not found")

type DrawHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Notifier
	locks    *eventLocks
}

func NewDrawHandler(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *DrawHandler {
	return &DrawHandler{db: db, cfg: cfg, notifier: notifier, locks: newEventLocks()}
}

// drawResult is a committed draw, kept in memory for notifications
type drawResult struct {
	event        models.Event
	participants map[string]models.Participant
	assignment   map[string]string
	drawnAt      time.Time
}

// generateMatches runs the authoritative draw for eventID and replaces any
// previous assignment in a single transaction. Draws for the same event are
// serialized, so the search runs before the write transaction opens. A failed
// draw leaves the previous assignment untouched.
func (h *DrawHandler) generateMatches(ctx context.Context, eventID string) (drawResult, error) {
	unlock := h.locks.lock(eventID)
	defer unlock()

	event, err := getEventByID(ctx, h.db, eventID)
	if err == sql.ErrNoRows {
		return drawResult{}, errEventNotFound
	}
	if err != nil {
		return drawResult{}, fmt.Errorf("query event: %w", err)
	}

	participants, err := loadParticipants(ctx, h.db, eventID)
	if err != nil {
		return drawResult{}, fmt.Errorf("query participants: %w", err)
	}
	exclusions, err := loadExclusions(ctx, h.db, eventID)
	if err != nil {
		return drawResult{}, fmt.Errorf("query exclusions: %w", err)
	}

	ids := make([]string, len(participants))
	byID := make(map[string]models.Participant, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	forbidden := make([]matching.Exclusion[string], len(exclusions))
	for i, ex := range exclusions {
		forbidden[i] = matching.Exclusion[string]{Giver: ex.GiverID, Receiver: ex.ExcludedID}
	}

	sol, err := matching.Solve(ids, forbidden, solveOptions(h.cfg.MaxAttempts)...)
	if err != nil {
		// participants are kept so callers can name an infeasible giver
		return drawResult{event: event, participants: byID}, err
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return drawResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace the previous draw
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignment WHERE event_id = $1`, eventID); err != nil {
		return drawResult{}, fmt.Errorf("clear previous draw: %w", err)
	}
	for _, giverID := range ids {
		rowID, err := auth.NewRowID()
		if err != nil {
			return drawResult{}, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO assignment (id, event_id, giver_id, receiver_id)
			VALUES ($1, $2, $3, $4)
		`, rowID, eventID, giverID, sol.Assignment[giverID])
		if err != nil {
			return drawResult{}, fmt.Errorf("insert assignment: %w", err)
		}
	}

	drawnAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE event
		SET status = $1, drawn_at = $2
		WHERE id = $3
	`, models.StatusDrawn, drawnAt, eventID)
	if err != nil {
		return drawResult{}, fmt.Errorf("mark event drawn: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return drawResult{}, fmt.Errorf("commit draw: %w", err)
	}

	slog.Info("matches generated", "event_id", eventID, "participants", len(ids), "attempts", sol.Attempts)

	return drawResult{
		event:        event,
		participants: byID,
		assignment:   sol.Assignment,
		drawnAt:      drawnAt,
	}, nil
}

// notifyAll tells every giver their receiver and returns how many were reached.
// Failures are logged; the draw stays committed.
func (h *DrawHandler) notifyAll(ctx context.Context, res drawResult) int {
	revealURL := h.cfg.BaseURL + "/e/" + res.event.ShareSlug + "/my-match"

	var eventTime string
	if res.event.EventTime != nil {
		eventTime = *res.event.EventTime
	}

	notified := 0
	for giverID, receiverID := range res.assignment {
		giver := res.participants[giverID]
		msg := notify.Message{
			To:            giver.Email,
			GiverName:     giver.Name,
			ReceiverName:  res.participants[receiverID].Name,
			EventName:     res.event.Name,
			OrganizerName: res.event.OrganizerName,
			EventDate:     res.event.EventDate,
			EventTime:     eventTime,
			Location:      res.event.Location,
			Budget:        res.event.Budget,
			RevealURL:     revealURL,
			Token:         giver.Token,
		}
		if err := h.notifier.Notify(ctx, msg); err != nil {
			slog.Warn("failed to notify participant", "error", err, "event_id", res.event.ID, "participant_id", giverID)
			continue
		}
		notified++
	}
	return notified
}

// DrawEvent handles POST /events/{id}/draw
func (h *DrawHandler) DrawEvent(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.generateMatches(r.Context(), eventID)
	switch {
	case errors.Is(err, errEventNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	case errors.Is(err, matching.ErrNoSolution):
		slog.Info("draw infeasible", "event_id", eventID, "error", err)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, noSolutionReason(err, func(giver any) string {
			id, _ := giver.(string)
			return res.participants[id].Name
		}))
		return
	case err != nil:
		slog.Error("failed to generate matches", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to draw names")
		return
	}

	// Notifications outlive a client that disconnects after the commit
	notified := h.notifyAll(context.WithoutCancel(r.Context()), res)

	slog.Info("event drawn", "event_id", eventID, "notified", notified)

	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{
		MatchCount: len(res.assignment),
		Notified:   notified,
		DrawnAt:    res.drawnAt,
	})
}

// GetMatches handles GET /events/{id}/matches
// Organizer view of the current draw
func (h *DrawHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
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

	if event.Status != models.StatusDrawn {
		middleware.ErrorResponse(w, http.StatusConflict, "Names have not been drawn yet")
		return
	}

	matches, err := loadMatches(ctx, h.db, eventID)
	if err != nil {
		slog.Error("failed to query matches", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventMatches{
		EventID: eventID,
		DrawnAt: event.DrawnAt,
		Matches: matches,
	})
}
