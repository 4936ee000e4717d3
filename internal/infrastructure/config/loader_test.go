package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.General.PollIntervalMS <= 0 {
		t.Errorf("poll interval not hydrated, got %d", cfg.General.PollIntervalMS)
	}
	if cfg.History.MaxItems <= 0 {
		t.Errorf("history max items not hydrated, got %d", cfg.History.MaxItems)
	}
	if cfg.History.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.History.Backend)
	}
}

func TestLoadMergesUserSettingsOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	partial := `{"history": {"enabled": true, "max_items": 7}}`
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.History.MaxItems != 7 {
		t.Errorf("user max_items = %d, want 7", cfg.History.MaxItems)
	}
	// Keys absent from the user file keep their default values.
	if cfg.General.PollIntervalMS != 500 {
		t.Errorf("default poll interval = %d, want 500", cfg.General.PollIntervalMS)
	}
	if !cfg.Security.Enabled {
		t.Error("default security.enabled lost in merge")
	}
}

func TestLoadCorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on corrupt file should not error, got %v", err)
	}
	if cfg.General.PollIntervalMS != 500 {
		t.Errorf("corrupt config did not fall back to defaults, poll = %d", cfg.General.PollIntervalMS)
	}

	// The broken file is left in place for inspection.
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{not json" {
		t.Errorf("corrupt file was altered: %q, %v", data, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.Modules.Disabled = []string{"codeformat"}

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(reloaded.Modules.Disabled) != 1 || reloaded.Modules.Disabled[0] != "codeformat" {
		t.Errorf("disabled modules = %v, want [codeformat]", reloaded.Modules.Disabled)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	loader := NewFileLoader(path)

	cfg, _ := loader.Load(context.Background())
	cfg.History.MaxItems = 3
	if err := loader.Save(cfg); err != nil {
		t.Fatal(err)
	}

	restored, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if restored.History.MaxItems == 3 {
		t.Error("Reset() kept modified max_items")
	}

	onDisk, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.History.MaxItems == 3 {
		t.Error("reset not persisted to disk")
	}
}

func TestBackupCopiesCurrentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	loader := NewFileLoader(path)
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backupPath, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	original, _ := os.ReadFile(path)
	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup file unreadable: %v", err)
	}
	if string(original) != string(copied) {
		t.Error("backup content differs from original")
	}
}

func TestBackupMissingFileFails(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "config.json"))
	if _, err := loader.Backup(); err == nil {
		t.Error("expected error backing up a missing config file")
	}
}

func TestDefaultConfigParsesEmbeddedJSON(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ConfigFormatVersion == "" {
		t.Error("embedded defaults missing config_format_version")
	}
	if !cfg.History.Enabled {
		t.Error("embedded defaults should enable history")
	}

	// The snapshot must round-trip as JSON, it seeds new config files.
	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("default config does not marshal: %v", err)
	}
	var back struct {
		History struct {
			MaxItems int `json:"max_items"`
		} `json:"history"`
	}
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("default config does not unmarshal: %v", err)
	}
	if back.History.MaxItems != cfg.History.MaxItems {
		t.Errorf("max_items round-trip = %d, want %d", back.History.MaxItems, cfg.History.MaxItems)
	}
}
