package processors

import (
	"context"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// HistoryTracker appends captured clipboard text to the history store.
// Content matching the sensitive-content rules is never persisted.
type HistoryTracker struct {
	Store    ports.HistoryStore
	Filter   ports.SecurityFilter
	Notifier ports.Notifier
	Log      ports.Logger
}

// NewHistoryTracker builds the history tracker processor.
func NewHistoryTracker(store ports.HistoryStore, filter ports.SecurityFilter, notifier ports.Notifier, log ports.Logger) *HistoryTracker {
	return &HistoryTracker{Store: store, Filter: filter, Notifier: notifier, Log: log}
}

func (h *HistoryTracker) Name() string { return "historytracker" }

func (h *HistoryTracker) Description() string {
	return "Records clipboard text in the history store"
}

// Process implements ports.Processor. It never modifies the clipboard.
func (h *HistoryTracker) Process(ctx context.Context, content string, cfg domain.Config) (bool, error) {
	if !cfg.History.Enabled {
		return false, nil
	}

	if cfg.Security.Enabled && h.Filter != nil {
		match, err := h.Filter.Evaluate(content)
		if err != nil {
			return false, err
		}
		if match.Matched {
			h.Log.Info("sensitive content withheld from history", map[string]interface{}{
				"level":   string(match.Level),
				"reasons": match.Reasons,
			})
			if cfg.Security.NotifyOnMatch && h.Notifier != nil && h.Notifier.Enabled() {
				if err := h.Notifier.Notify("clipd", "sensitive content not recorded"); err != nil {
					h.Log.Warn("notification failed", map[string]interface{}{"error": err.Error()})
				}
			}
			return false, nil
		}
	}

	return false, h.Store.Add(content)
}

var _ ports.Processor = (*HistoryTracker)(nil)
