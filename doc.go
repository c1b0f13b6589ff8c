// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Santa Draw API server.

Santa Draw runs Secret Santa gift exchanges: an organizer lists the
participants and who must not draw whom, the server finds a random
assignment in which everyone gives exactly one gift and receives exactly
one, and each giver learns only their own receiver.

# Starting the Server

With no database settings the server uses a local sqlite file:

	DATABASE_URL=santa.db ADMIN_KEY_SALT=... EVENT_SLUG_SALT=... go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -p 3318

Settings may also live in a .env file in the working directory.

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string or sqlite file
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - EVENT_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - BASE_URL (--base-url): Public URL used in share and reveal links
  - MATCH_MAX_ATTEMPTS (--max-attempts): Draw attempt budget (default: 2000)
  - SMTP_ADDR (--smtp), SMTP_USER, SMTP_PASSWORD, MAIL_FROM (--mail-from):
    outgoing mail; without SMTP_ADDR notifications are only logged

Logs are text on a terminal and JSON otherwise.

# Architecture

  - matching: Constrained derangement solver and dry-run check
  - handlers: HTTP request handlers (events, draw, reveal)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - notify: Draw notifications (SMTP or log)
  - auth: Key, token and slug generation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
