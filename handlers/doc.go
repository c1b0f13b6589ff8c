// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Santa Draw API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - EventHandler: Feasibility check, event creation and the organizer view
  - DrawHandler: Drawing names, notifications and the full assignment
  - RevealHandler: Public event info and a participant's own match

Handlers are created via constructor functions that accept *sql.DB and Config:

	eventHandler := handlers.NewEventHandler(db, cfg)
	drawHandler := handlers.NewDrawHandler(db, cfg, notifier)

# Event Lifecycle

Events have two states: draft → drawn

	POST /events/check       → CheckEvent (dry run, nothing stored)
	POST /events             → CreateEvent (returns admin_key)
	POST /events/{id}/draw   → DrawEvent (draft or drawn, replaces any draw)
	GET  /events/{id}/matches → GetMatches (drawn only)

An event is only stored when its exclusions admit at least one valid
draw, so a later draw can only fail if the attempt budget runs out.
Organizer operations require the X-Admin-Key header.

# Drawing Names

DrawEvent loads participants and exclusions and hands them to
matching.Solve under a bounded step budget. Only a successful search opens
a transaction, where the new assignment replaces the old one. Draws for the
same event are serialized in process. A failed draw leaves the previous
assignment untouched.

After the commit every giver is notified through notify.Notifier.
Delivery failures are logged and counted but never undo the draw.

# Reveal

Participants use the share slug and the token from their notification:

	GET /e/{slug}          → GetEvent
	GET /e/{slug}/my-match → GetMyMatch (X-Participant-Token)

A token only ever reveals its own holder's receiver.
*/
package handlers
