// Package dispatch routes new clipboard content through the registered
// content processors.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// Dispatcher holds the processor registry and the last-processed content
// hash. Processors are registered explicitly at startup and run in
// registration order; a mutex serializes dispatch so overlapping poll ticks
// never run processors concurrently.
type Dispatcher struct {
	mu       sync.Mutex
	procs    []ports.Processor
	lastHash string
	log      ports.Logger
}

// New creates an empty dispatcher.
func New(log ports.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Register appends a processor to the registry.
func (d *Dispatcher) Register(p ports.Processor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.procs = append(d.procs, p)
}

// Processors lists registered processors with their enabled state.
func (d *Dispatcher) Processors(cfg domain.Config) []domain.ProcessorInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	infos := make([]domain.ProcessorInfo, 0, len(d.procs))
	for _, p := range d.procs {
		infos = append(infos, domain.ProcessorInfo{
			Name:        p.Name(),
			Description: p.Description(),
			Enabled:     cfg.ProcessorEnabled(p.Name()),
		})
	}
	return infos
}

// Dispatch runs every enabled processor against the content and reports
// whether any of them modified the clipboard. Repeated identical content is
// short-circuited by hash comparison, and content above the configured size
// ceiling is rejected without processing. One processor failing (error or
// panic) never prevents the others from running.
func (d *Dispatcher) Dispatch(ctx context.Context, content string, cfg domain.Config) bool {
	if content == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(content) > cfg.MaxContentBytes() {
		d.log.Debug("content exceeds size ceiling", map[string]interface{}{
			"bytes": len(content),
			"limit": cfg.MaxContentBytes(),
		})
		return false
	}

	hash := domain.ContentHash(content)
	if hash == d.lastHash {
		return false
	}
	d.lastHash = hash

	modified := false
	for _, p := range d.procs {
		if !cfg.ProcessorEnabled(p.Name()) {
			continue
		}
		if d.invoke(ctx, p, content, cfg) {
			modified = true
		}
	}
	return modified
}

// MarkProcessed records content the monitor has already accounted for, so a
// processor rewriting the clipboard does not trigger itself on the next poll.
func (d *Dispatcher) MarkProcessed(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastHash = domain.ContentHash(content)
}

func (d *Dispatcher) invoke(ctx context.Context, p ports.Processor, content string, cfg domain.Config) (modified bool) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("processor panicked", fmt.Errorf("%v", r), map[string]interface{}{"processor": p.Name()})
			modified = false
		}
	}()

	procCtx, cancel := context.WithTimeout(ctx, cfg.ProcessTimeout())
	defer cancel()

	modified, err := p.Process(procCtx, content, cfg)
	if err != nil {
		d.log.Error("processor failed", err, map[string]interface{}{"processor": p.Name()})
		return false
	}
	if modified {
		d.log.Debug("processor modified clipboard", map[string]interface{}{"processor": p.Name()})
	}
	return modified
}
