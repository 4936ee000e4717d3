package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clipd/clipd/internal/ports"
)

// Watcher watches the config file for changes and emits reload signals.
// A save burst (truncate, partial write, completed write) collapses into a
// single reload emitted after the burst settles, so the daemon never
// reloads a half-written file.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	reloadCh    chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	log         ports.Logger
}

// NewWatcher creates a watcher for the given config path.
func NewWatcher(path string, log ports.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		path:        path,
		debounceDur: 500 * time.Millisecond,
		reloadCh:    make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         log,
	}, nil
}

// Reload returns the channel that receives a signal after the config file
// changed on disk.
func (w *Watcher) Reload() <-chan struct{} {
	return w.reloadCh
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine.
// The parent directory is watched rather than the file itself so atomic
// save-via-rename (the common editor behavior) is still observed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.log.Warn("config watch failed", map[string]interface{}{"path": w.path, "error": err.Error()})
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Trailing-edge debounce: every matching event rearms the timer, and
	// the reload fires only after a full quiet period. The last write of a
	// burst is therefore what the daemon reloads, never an intermediate
	// truncated state.
	timer := time.NewTimer(w.debounceDur)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounceDur)
			armed = true
		case <-timer.C:
			armed = false
			w.log.Debug("config file changed", map[string]interface{}{"path": w.path})
			select {
			case w.reloadCh <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}
