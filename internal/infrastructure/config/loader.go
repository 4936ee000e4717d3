// Package config loads and persists the per-user clipd configuration.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/clipd/clipd/assets"
	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/pkg/filesystem"
	"github.com/clipd/clipd/internal/ports"
)

// FileLoader loads JSON configuration from the per-user support directory
// (overridable via CLIPD_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. User settings are merged over the
// embedded defaults; a missing file is created from those defaults, and an
// unreadable or corrupt file degrades to defaults rather than failing.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return hydrateDefaults(cfg), nil
		}
		return hydrateDefaults(defaultConfig()), nil
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Corrupt config degrades to defaults; the file is left in place
		// for the user (and `clipd doctor`) to inspect.
		return hydrateDefaults(defaultConfig()), nil
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("CLIPD_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.SupportDir(), "config.json")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := ensureConfigDir(l.resolvePath()); err != nil {
		return err
	}
	return os.WriteFile(l.resolvePath(), raw, domain.SecureFilePermissions)
}

// Reset overwrites the config with defaults and returns the default snapshot.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := defaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := json.Unmarshal(assets.DefaultConfigJSON, &cfg); err != nil {
		// Fallback to minimal config if the embedded JSON is corrupted.
		return domain.Config{
			ConfigFormatVersion: "1",
			General: domain.GeneralSettings{
				PollIntervalMS:  500,
				MaxContentBytes: domain.DefaultMaxContentBytes,
				Notifications:   true,
			},
			History: domain.HistorySettings{
				Enabled:          true,
				MaxItems:         domain.DefaultMaxHistoryItems,
				MaxContentLength: domain.DefaultMaxContentLength,
				Backend:          "file",
			},
			Security: domain.SecuritySettings{Enabled: true},
		}
	}
	return cfg
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.General.PollIntervalMS <= 0 {
		cfg.General.PollIntervalMS = 500
	}
	if cfg.General.MaxContentBytes <= 0 {
		cfg.General.MaxContentBytes = domain.DefaultMaxContentBytes
	}
	if cfg.History.MaxItems <= 0 {
		cfg.History.MaxItems = domain.DefaultMaxHistoryItems
	}
	if cfg.History.MaxContentLength <= 0 {
		cfg.History.MaxContentLength = domain.DefaultMaxContentLength
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "file"
	}
	if cfg.History.FilePath == "" {
		cfg.History.FilePath = filepath.Join(filesystem.SupportDir(), "history.json")
	}
	if cfg.Security.RulesFile == "" {
		cfg.Security.RulesFile = filepath.Join(filesystem.SupportDir(), "security.yaml")
	}
	if cfg.Performance.ProcessTimeoutSeconds <= 0 {
		cfg.Performance.ProcessTimeoutSeconds = 10
	}
	if cfg.Memory.SampleIntervalSeconds <= 0 {
		cfg.Memory.SampleIntervalSeconds = 60
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// DefaultConfig exposes the bootstrap configuration template.
func DefaultConfig() domain.Config {
	return hydrateDefaults(defaultConfig())
}
