package config

import (
	"os"
	"path/filepath"
	"testing"

	"tracker/internal/task"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Defaults.Project != "inbox" {
		t.Errorf("expected default project inbox, got %q", cfg.Defaults.Project)
	}
	if cfg.DefaultPriority() != task.PriorityMedium {
		t.Errorf("expected medium, got %s", cfg.DefaultPriority())
	}
	if cfg.ColumnWidth() != 24 {
		t.Errorf("expected column width 24, got %d", cfg.ColumnWidth())
	}
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
version: 1
defaults:
  developer: alice
  priority: high
  project: webshop
board:
  column_width: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Developer != "alice" {
		t.Errorf("expected alice, got %q", cfg.Defaults.Developer)
	}
	if cfg.DefaultPriority() != task.PriorityHigh {
		t.Errorf("expected high, got %s", cfg.DefaultPriority())
	}
	if cfg.ColumnWidth() != 30 {
		t.Errorf("expected 30, got %d", cfg.ColumnWidth())
	}
}

func TestLoad_BadPriority(t *testing.T) {
	path := writeConfig(t, `
version: 1
defaults:
  priority: urgent
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestLoad_NarrowColumn(t *testing.T) {
	path := writeConfig(t, `
version: 1
board:
  column_width: 5
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for too-narrow column")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Defaults.Developer = "bob"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.Developer != "bob" {
		t.Errorf("round trip lost developer: %q", got.Defaults.Developer)
	}
	if got.Version != cfg.Version || got.Defaults.Project != cfg.Defaults.Project {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}
