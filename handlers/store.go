// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"sync"

	"github.com/danielhkuo/santa-draw/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const eventColumns = `id, name, organizer_name, organizer_email, event_date, event_time,
	location, budget, status, share_slug, drawn_at, created_at`

func scanEvent(row *sql.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.OrganizerName, &e.OrganizerEmail, &e.EventDate, &e.EventTime,
		&e.Location, &e.Budget, &e.Status, &e.ShareSlug, &e.DrawnAt, &e.CreatedAt,
	)
	return e, err
}

func getEventByID(ctx context.Context, q querier, eventID string) (models.Event, error) {
	return scanEvent(q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM event WHERE id = $1`, eventID))
}

func getEventBySlug(ctx context.Context, q querier, slug string) (models.Event, error) {
	return scanEvent(q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM event WHERE share_slug = $1`, slug))
}

// loadParticipants returns an event's participants in entry order
func loadParticipants(ctx context.Context, q querier, eventID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, event_id, ordinal, name, email, token
		FROM participant
		WHERE event_id = $1
		ORDER BY ordinal
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.Position, &p.Name, &p.Email, &p.Token); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// loadExclusions returns an event's exclusions with participant names
func loadExclusions(ctx context.Context, q querier, eventID string) ([]models.Exclusion, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT x.giver_id, g.name, x.excluded_id, e.name
		FROM exclusion x
		JOIN participant g ON g.id = x.giver_id
		JOIN participant e ON e.id = x.excluded_id
		WHERE x.event_id = $1
		ORDER BY g.ordinal, e.ordinal
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exclusions := []models.Exclusion{}
	for rows.Next() {
		var ex models.Exclusion
		if err := rows.Scan(&ex.GiverID, &ex.GiverName, &ex.ExcludedID, &ex.ExcludedName); err != nil {
			return nil, err
		}
		exclusions = append(exclusions, ex)
	}
	return exclusions, rows.Err()
}

// loadMatches returns the current draw ordered by giver entry order
func loadMatches(ctx context.Context, q querier, eventID string) ([]models.Match, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT a.giver_id, g.name, a.receiver_id, r.name
		FROM assignment a
		JOIN participant g ON g.id = a.giver_id
		JOIN participant r ON r.id = a.receiver_id
		WHERE a.event_id = $1
		ORDER BY g.ordinal
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.GiverID, &m.GiverName, &m.ReceiverID, &m.ReceiverName); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// eventLocks serializes draws per event within this process
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*eventLock
}

type eventLock struct {
	mu   sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[string]*eventLock)}
}

// lock blocks until eventID is free and returns its unlock func
func (l *eventLocks) lock(eventID string) func() {
	l.mu.Lock()
	el, ok := l.locks[eventID]
	if !ok {
		el = &eventLock{}
		l.locks[eventID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()
	return func() {
		el.mu.Unlock()

		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}
