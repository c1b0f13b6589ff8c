// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables from the embedded schema.sql:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between SQLite and PostgreSQL.

# Tables

The schema includes:

  - event: Event metadata, share slug and draw state
  - participant: People in an event, with their private reveal token
  - exclusion: Giver/excluded pairs the draw must respect
  - assignment: The current draw, one row per giver

# Relationships

	event 1──* participant
	event 1──* exclusion
	event 1──* assignment
	participant 1──* exclusion (as giver and as excluded)
	participant 1──1 assignment (as giver and as receiver)

All foreign keys use ON DELETE CASCADE.

# Draw Invariants

The assignment table enforces the draw shape durably:

  - UNIQUE (event_id, giver_id): nobody gives twice
  - UNIQUE (event_id, receiver_id): nobody receives twice
  - CHECK (giver_id <> receiver_id): nobody draws themselves
*/
package db
