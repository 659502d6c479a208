// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := ParseFlags([]string{"-d", "backchannel.db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8711 {
		t.Errorf("Expected default port 8711, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlagsMissingDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := ParseFlags(nil)
	if err == nil {
		t.Error("Expected error for missing database URL")
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/backchannel")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/backchannel" {
		t.Errorf("Unexpected database URL %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected database type postgres, got %q", cfg.DatabaseType)
	}
}

func TestParseFlagsInvalidDatabaseType(t *testing.T) {
	_, err := ParseFlags([]string{"-d", "x", "-t", "mysql"})
	if err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestParseFlagsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "backchannel.db")

	_, err := ParseFlags(nil)
	if err == nil {
		t.Error("Expected error for invalid PORT")
	}
}
