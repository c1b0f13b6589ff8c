// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

There are no user accounts. An organizer proves ownership of an event with its
admin key, and a participant proves who they are with their private token.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(eventID, salt)
	err := auth.ValidateAdminKey(eventID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same event ID and salt always produce the same key. This allows validation
without storing the key in the database.

# Participant Tokens

Participant tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateParticipantToken()

They are stored with the participant, sent in the draw notification, and
presented as X-Participant-Token to reveal that participant's receiver.
CheckParticipantToken rejects malformed tokens before any lookup.

# Share Slugs

Share slugs create URL-friendly public identifiers for events:

	slug := auth.GenerateShareSlug(eventID, salt)

# ID Generation

Random hex IDs for events, UUIDs for participant and assignment rows:

	id, err := auth.GenerateID(16)  // 32 hex characters
	rowID, err := auth.NewRowID()   // UUID v4
*/
package auth
