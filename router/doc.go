// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Santa Draw API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, notifier)

The notifier receives one message per giver after every successful draw.

# Endpoints

Health:

	GET /health

Event setup (public, no credentials yet):

	POST /events/check - Dry-run feasibility check, writes nothing
	POST /events       - Create event (returns admin_key and share_url)

Organizer (requires X-Admin-Key):

	GET  /events/{id}/admin   - Event, participants and exclusions
	POST /events/{id}/draw    - Draw names, replacing any previous draw
	GET  /events/{id}/matches - Full assignment

Participants (share slug, my-match requires X-Participant-Token):

	GET /e/{slug}          - Public event info
	GET /e/{slug}/my-match - The caller's own receiver

Every route except health and root is wrapped in middleware.WithLogging.
*/
package router
