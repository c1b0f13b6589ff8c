// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("EVENT_SLUG_SALT", "test-slug")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("MATCH_MAX_ATTEMPTS", "50")
	t.Setenv("BASE_URL", "https://santa.example.com/")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %q", cfg.DriverName())
	}
	if cfg.MaxAttempts != 50 {
		t.Errorf("expected 50 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.BaseURL != "https://santa.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite by default, got %q", cfg.DatabaseType)
	}
	if cfg.MaxAttempts != 2000 {
		t.Errorf("expected default 2000 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.SMTPAddr != "" {
		t.Errorf("expected no SMTP server by default, got %q", cfg.SMTPAddr)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "pgx", "-d", "postgres://x", "-admin-salt", "s1", "-slug-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DriverName() != "pgx" {
		t.Errorf("CLI should override env: expected pgx, got %q", cfg.DriverName())
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{
			name:    "missing database url",
			env:     map[string]string{"ADMIN_KEY_SALT": "a", "EVENT_SLUG_SALT": "b"},
			wantErr: "database URL required",
		},
		{
			name:    "missing admin salt",
			env:     map[string]string{"DATABASE_URL": "x", "EVENT_SLUG_SALT": "b"},
			wantErr: "ADMIN_KEY_SALT required",
		},
		{
			name:    "missing slug salt",
			env:     map[string]string{"DATABASE_URL": "x", "ADMIN_KEY_SALT": "a"},
			wantErr: "EVENT_SLUG_SALT required",
		},
		{
			name:    "bad port",
			env:     map[string]string{"PORT": "abc"},
			wantErr: "parse env:",
		},
		{
			name:    "unknown database type",
			env:     map[string]string{"DATABASE_URL": "x", "ADMIN_KEY_SALT": "a", "EVENT_SLUG_SALT": "b"},
			args:    []string{"-t", "mysql"},
			wantErr: "unsupported database type",
		},
		{
			name:    "zero attempts",
			env:     map[string]string{"DATABASE_URL": "x", "ADMIN_KEY_SALT": "a", "EVENT_SLUG_SALT": "b"},
			args:    []string{"-max-attempts", "0"},
			wantErr: "max attempts must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "DATABASE_URL", "ADMIN_KEY_SALT", "EVENT_SLUG_SALT"} {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=file:dotenv.db\nADMIN_KEY_SALT=from-file\nEVENT_SLUG_SALT=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// godotenv sets process env; make sure those are cleaned up after the test
	for _, key := range []string{"DATABASE_URL", "ADMIN_KEY_SALT", "EVENT_SLUG_SALT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "file:dotenv.db" {
		t.Errorf("expected DATABASE_URL from .env, got %q", cfg.DatabaseURL)
	}
}
