// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AdminKeySalt  string `env:"ADMIN_KEY_SALT"`
	EventSlugSalt string `env:"EVENT_SLUG_SALT"`
	BaseURL       string `env:"BASE_URL" envDefault:"http://localhost:3318"`
	MaxAttempts   int    `env:"MATCH_MAX_ATTEMPTS" envDefault:"2000"`

	// Notifications are only logged when SMTPAddr is empty
	SMTPAddr     string `env:"SMTP_ADDR"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"santa@localhost"`
}

// Driver names registered by main for each DATABASE_TYPE
var drivers = map[string]string{
	"sqlite":   "sqlite",
	"postgres": "postgres",
	"pgx":      "pgx",
}

// DriverName returns the database/sql driver for DatabaseType
func (c Config) DriverName() string {
	return drivers[c.DatabaseType]
}

// ParseFlags loads .env and the environment, then applies CLI overrides
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("santa-draw", flag.ContinueOnError)

	// Network config
	flags.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite, postgres or pgx)")
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL used in links")
	flags.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Draw attempt budget")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminKeySalt, "admin-salt", cfg.AdminKeySalt, "Admin key salt (prefer env)")
	flags.StringVar(&cfg.EventSlugSalt, "slug-salt", cfg.EventSlugSalt, "Event slug salt (prefer env)")

	// Mail
	flags.StringVar(&cfg.SMTPAddr, "smtp", cfg.SMTPAddr, "SMTP server host:port")
	flags.StringVar(&cfg.MailFrom, "mail-from", cfg.MailFrom, "Sender address for notifications")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DriverName() == "" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.MaxAttempts <= 0 {
		return Config{}, errors.New("max attempts must be positive")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.EventSlugSalt == "" {
		return Config{}, errors.New("EVENT_SLUG_SALT required")
	}

	return cfg, nil
}
