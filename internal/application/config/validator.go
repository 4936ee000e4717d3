// Package config validates configuration before it is persisted.
package config

import (
	"fmt"

	"github.com/clipd/clipd/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.General.PollIntervalMS < 0 {
		return fmt.Errorf("general.poll_interval_ms must be >= 0")
	}
	if cfg.General.MaxContentBytes < 0 {
		return fmt.Errorf("general.max_content_bytes must be >= 0")
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if cfg.Security.Enabled && cfg.Security.RulesFile == "" {
		return fmt.Errorf("security.rules_file must be set when security is enabled")
	}
	if cfg.Performance.ProcessTimeoutSeconds < 0 {
		return fmt.Errorf("performance.process_timeout_seconds must be >= 0")
	}
	return nil
}

func validateHistory(h domain.HistorySettings) error {
	if h.MaxItems < 0 {
		return fmt.Errorf("history.max_items must be >= 0")
	}
	if h.MaxContentLength < 0 {
		return fmt.Errorf("history.max_content_length must be >= 0")
	}
	switch h.Backend {
	case "", "file", "sqlite":
		return nil
	default:
		return fmt.Errorf("history.backend must be file|sqlite, got %s", h.Backend)
	}
}
