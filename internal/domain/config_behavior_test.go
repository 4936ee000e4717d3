package domain_test

import (
	"testing"
	"time"

	"github.com/clipd/clipd/internal/domain"
)

// TestConfig_ProcessorEnabled tests the disabled-list lookup
func TestConfig_ProcessorEnabled(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		processor string
		want      bool
	}{
		{
			name:      "enabled by default",
			config:    domain.Config{},
			processor: "markdown",
			want:      true,
		},
		{
			name: "disabled when listed",
			config: domain.Config{
				Modules: domain.ModuleSettings{Disabled: []string{"markdown"}},
			},
			processor: "markdown",
			want:      false,
		},
		{
			name: "other processors unaffected",
			config: domain.Config{
				Modules: domain.ModuleSettings{Disabled: []string{"markdown"}},
			},
			processor: "diagram",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.ProcessorEnabled(tt.processor); got != tt.want {
				t.Errorf("ProcessorEnabled(%s) = %v, want %v", tt.processor, got, tt.want)
			}
		})
	}
}

// TestConfig_DisableProcessor tests disabling a processor
func TestConfig_DisableProcessor(t *testing.T) {
	cfg := domain.Config{}

	if err := cfg.DisableProcessor("codeformat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProcessorEnabled("codeformat") {
		t.Error("processor still enabled after DisableProcessor")
	}

	if err := cfg.DisableProcessor("codeformat"); err == nil {
		t.Error("expected error disabling an already-disabled processor")
	}
}

// TestConfig_EnableProcessor tests re-enabling a processor
func TestConfig_EnableProcessor(t *testing.T) {
	cfg := domain.Config{
		Modules: domain.ModuleSettings{Disabled: []string{"diagram", "markdown"}},
	}

	if err := cfg.EnableProcessor("diagram"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.ProcessorEnabled("diagram") {
		t.Error("processor still disabled after EnableProcessor")
	}
	if cfg.ProcessorEnabled("markdown") {
		t.Error("unrelated processor was re-enabled")
	}

	if err := cfg.EnableProcessor("historytracker"); err == nil {
		t.Error("expected error enabling a processor that is not disabled")
	}
}

// TestConfig_Durations tests default fallbacks for zero-valued settings
func TestConfig_Durations(t *testing.T) {
	var cfg domain.Config

	if got := cfg.PollInterval(); got != domain.DefaultPollInterval {
		t.Errorf("PollInterval() = %v, want default %v", got, domain.DefaultPollInterval)
	}
	if got := cfg.ProcessTimeout(); got != domain.DefaultProcessTimeout {
		t.Errorf("ProcessTimeout() = %v, want default %v", got, domain.DefaultProcessTimeout)
	}

	cfg.General.PollIntervalMS = 250
	cfg.Performance.ProcessTimeoutSeconds = 3
	if got := cfg.PollInterval(); got != 250*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 250ms", got)
	}
	if got := cfg.ProcessTimeout(); got != 3*time.Second {
		t.Errorf("ProcessTimeout() = %v, want 3s", got)
	}
}

// TestHistoryEntry_Hash tests that the content hash matches MD5 of the content
func TestHistoryEntry_Hash(t *testing.T) {
	entry := domain.NewHistoryEntry("hello clipboard")
	if entry.Hash != domain.ContentHash("hello clipboard") {
		t.Errorf("entry hash %s does not match ContentHash", entry.Hash)
	}
	if entry.Hash == domain.ContentHash("different") {
		t.Error("distinct content produced identical hashes")
	}
	if entry.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}
