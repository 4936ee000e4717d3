// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The monitor loop, dispatcher, and CLI
// depend only on these abstractions, never on concrete pasteboard, storage,
// or notification implementations.
package ports

import (
	"context"

	"github.com/clipd/clipd/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Clipboard reads and writes the system pasteboard.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
	Enabled() bool
}

// RichClipboard additionally places styled (RTF) content on the pasteboard.
// Only the darwin adapter implements this today.
type RichClipboard interface {
	Clipboard
	WriteRTF(rtf string) error
}

// Processor is one content-transform module. Process inspects (and may
// rewrite) the clipboard content and returns true when it modified the
// clipboard. Implementations must tolerate being called concurrently with
// store reads, but dispatch itself is serialized.
type Processor interface {
	Name() string
	Description() string
	Process(ctx context.Context, content string, cfg domain.Config) (bool, error)
}

// Dispatcher routes new clipboard content through the registered
// processors, de-duplicating by content hash.
type Dispatcher interface {
	Dispatch(ctx context.Context, content string, cfg domain.Config) bool
	MarkProcessed(content string)
	Processors(cfg domain.Config) []domain.ProcessorInfo
}

// HistoryStore persists the bounded, most-recent-first clipboard history.
type HistoryStore interface {
	Add(content string) error
	Entries(limit int, search string) ([]domain.HistoryEntry, error)
	Clear() error
	ExportJSON(dest string) error
	Stats() (domain.HistoryStats, error)
	Path() string
}

// SecurityFilter evaluates clipboard content against sensitive-content rules.
type SecurityFilter interface {
	Evaluate(content string) (domain.ContentMatch, error)
}

// Notifier shows a user-facing OS notification. Failures are logged, never
// escalated.
type Notifier interface {
	Notify(title, message string) error
	Enabled() bool
}

// CommandRunner executes an external helper (textutil, a code formatter)
// with a deadline, feeding stdin and capturing stdout.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (string, error)
	LookPath(name string) bool
}

// LoginItemManager installs the monitor as a login item (launchd agent).
type LoginItemManager interface {
	Install(execPath string) (domain.HealthCheck, error)
	Uninstall() (domain.HealthCheck, error)
	Installed() bool
}

// RenderCache memoizes expensive content conversions keyed by content hash.
type RenderCache interface {
	Get(key string) (string, bool, error)
	Set(key, rendered string) error
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
