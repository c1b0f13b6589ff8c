// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateEventRequest: event details, participants, exclusions by index
  - EventDetails: name, organizer, date, time, location, budget
  - ParticipantInput: name, email
  - ExclusionInput: giver and excluded participant positions

# Response Types

Types for JSON responses:

  - CheckEventResponse: feasible, reason
  - CreateEventResponse: event_id, admin_key, share_slug, share_url
  - DrawResponse: match_count, notified, drawn_at
  - MyMatchResponse: event info and the caller's receiver
  - ErrorResponse: error, message

# Domain Types

  - Event: event metadata and draw state
  - Participant: one person in an event (token never serialized)
  - Exclusion: a giver who may not draw a participant
  - Match: one giver -> receiver pair
  - EventAdmin, EventMatches, PublicEvent: read views

# Constants

Status values:

	StatusDraft = "draft"
	StatusDrawn = "drawn"

Wire layouts:

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
*/
package models
