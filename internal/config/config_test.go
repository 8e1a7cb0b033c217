package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtflow
  environment: test
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
booking:
  buffer_minutes: 10
maintenance:
  hold_sweep_cron: "0 3 * * *"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.App.Port)
	}
	if cfg.Booking.BufferMinutes != 10 {
		t.Errorf("buffer = %d, want 10", cfg.Booking.BufferMinutes)
	}
	if cfg.Maintenance.HoldSweepCron != "0 3 * * *" {
		t.Errorf("cron = %q, want overridden value", cfg.Maintenance.HoldSweepCron)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtflow
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Booking.BufferMinutes != 15 {
		t.Errorf("default buffer = %d, want 15", cfg.Booking.BufferMinutes)
	}
	if cfg.Maintenance.HoldSweepCron == "" {
		t.Error("default hold sweep cron should be set")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "app:\n  port: 8080\ndatabase:\n  driver: sqlite\n  filename: x.db\n"},
		{"missing port", "app:\n  name: courtflow\ndatabase:\n  driver: sqlite\n  filename: x.db\n"},
		{"bad driver", "app:\n  name: courtflow\n  port: 8080\ndatabase:\n  driver: postgres\n  filename: x.db\n"},
		{"missing filename", "app:\n  name: courtflow\n  port: 8080\ndatabase:\n  driver: sqlite\n"},
		{"negative buffer", "app:\n  name: courtflow\n  port: 8080\ndatabase:\n  driver: sqlite\n  filename: x.db\nbooking:\n  buffer_minutes: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
