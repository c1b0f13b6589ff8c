// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in order, later sources winning:

 1. struct defaults (envDefault tags)
 2. a .env file in the working directory, if present
 3. the process environment
 4. CLI flags

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - EventSlugSalt: Secret for share slug generation (required)
  - BaseURL: Public URL used in share and reveal links
  - MaxAttempts: Attempt budget for the draw (default: 2000)
  - SMTPAddr, SMTPUser, SMTPPassword, MailFrom: Notification mail settings

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-base-url      Public base URL
	-max-attempts  Draw attempt budget
	-admin-salt    Admin key salt
	-slug-salt     Event slug salt
	-smtp          SMTP server host:port
	-mail-from     Sender address

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, BASE_URL, MATCH_MAX_ATTEMPTS,
	ADMIN_KEY_SALT, EVENT_SLUG_SALT,
	SMTP_ADDR, SMTP_USER, SMTP_PASSWORD, MAIL_FROM

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not one of sqlite, postgres, pgx
  - MATCH_MAX_ATTEMPTS is not positive
  - ADMIN_KEY_SALT or EVENT_SLUG_SALT is missing
*/
package cliparse
