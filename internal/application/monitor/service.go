// Package monitor implements the clipboard poll loop.
package monitor

import (
	"context"
	"runtime"
	"time"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// Service polls the clipboard and feeds new content to the dispatcher.
// Collaborators are injected; the service owns no global state.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Clipboard      ports.Clipboard
	Dispatcher     ports.Dispatcher
	Logger         ports.Logger

	// Reload, when non-nil, delivers a signal whenever the config file
	// changed on disk; the loop re-reads configuration without restarting.
	Reload <-chan struct{}

	// IntervalOverride, when positive, wins over the configured poll
	// interval (set by the watch command's --interval flag).
	IntervalOverride time.Duration
}

// Run blocks until ctx is cancelled, sampling the clipboard at the
// configured interval.
func (s *Service) Run(ctx context.Context) error {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	cfg = s.applyOverrides(cfg)

	s.Logger.Info("monitor started", map[string]interface{}{
		"poll_interval": cfg.PollInterval().String(),
	})

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	memTicker, memC := memoryTicker(cfg)
	defer func() {
		if memTicker != nil {
			memTicker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("monitor stopped", nil)
			return ctx.Err()
		case <-s.reload():
			fresh, err := s.ConfigProvider.Load(ctx)
			if err != nil {
				s.Logger.Warn("config reload failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			fresh = s.applyOverrides(fresh)
			if fresh.PollInterval() != cfg.PollInterval() {
				ticker.Reset(fresh.PollInterval())
			}
			if memorySamplingChanged(cfg, fresh) {
				if memTicker != nil {
					memTicker.Stop()
				}
				memTicker, memC = memoryTicker(fresh)
			}
			cfg = fresh
			s.Logger.Info("config reloaded", nil)
		case <-memC:
			s.logMemoryUsage()
		case <-ticker.C:
			s.Tick(ctx, cfg)
		}
	}
}

// Tick samples the clipboard once and dispatches its content. Read errors
// are logged and skipped; the loop must survive a flaky pasteboard.
func (s *Service) Tick(ctx context.Context, cfg domain.Config) {
	content, err := s.Clipboard.Read()
	if err != nil {
		s.Logger.Warn("clipboard read failed", map[string]interface{}{"error": err.Error()})
		return
	}

	if !s.Dispatcher.Dispatch(ctx, content, cfg) {
		return
	}

	// A processor rewrote the clipboard; record the new value so the next
	// poll does not re-trigger the pipeline on the transformed content.
	if rewritten, err := s.Clipboard.Read(); err == nil {
		s.Dispatcher.MarkProcessed(rewritten)
	}
}

func (s *Service) applyOverrides(cfg domain.Config) domain.Config {
	if s.IntervalOverride > 0 {
		cfg.General.PollIntervalMS = int(s.IntervalOverride.Milliseconds())
	}
	return cfg
}

// memoryTicker returns a running ticker when self-sampling is enabled, or a
// nil channel (which never fires) when it is not.
func memoryTicker(cfg domain.Config) (*time.Ticker, <-chan time.Time) {
	if !cfg.Memory.LogUsage {
		return nil, nil
	}
	t := time.NewTicker(cfg.MemorySampleInterval())
	return t, t.C
}

func memorySamplingChanged(prev, next domain.Config) bool {
	return prev.Memory.LogUsage != next.Memory.LogUsage ||
		prev.MemorySampleInterval() != next.MemorySampleInterval()
}

func (s *Service) reload() <-chan struct{} {
	if s.Reload != nil {
		return s.Reload
	}
	return nil
}

func (s *Service) logMemoryUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.Logger.Info("memory usage", map[string]interface{}{
		"heap_alloc_bytes": m.HeapAlloc,
		"sys_bytes":        m.Sys,
		"goroutines":       runtime.NumGoroutine(),
		"num_gc":           m.NumGC,
	})
}
