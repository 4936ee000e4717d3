package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/pkg/logger"
)

type stubClipboard struct {
	values []string
	reads  int
	err    error
}

func (s *stubClipboard) Read() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	idx := s.reads
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	s.reads++
	return s.values[idx], nil
}

func (s *stubClipboard) Write(string) error { return nil }
func (s *stubClipboard) Enabled() bool      { return true }

type stubDispatcher struct {
	dispatched []string
	marked     []string
	modified   bool
}

func (s *stubDispatcher) Dispatch(ctx context.Context, content string, cfg domain.Config) bool {
	s.dispatched = append(s.dispatched, content)
	return s.modified
}

func (s *stubDispatcher) MarkProcessed(content string) {
	s.marked = append(s.marked, content)
}

func (s *stubDispatcher) Processors(domain.Config) []domain.ProcessorInfo { return nil }

func TestTickDispatchesClipboardContent(t *testing.T) {
	clip := &stubClipboard{values: []string{"copied text"}}
	disp := &stubDispatcher{}
	svc := &Service{Clipboard: clip, Dispatcher: disp, Logger: logger.NewNop()}

	svc.Tick(context.Background(), domain.Config{})

	if len(disp.dispatched) != 1 || disp.dispatched[0] != "copied text" {
		t.Errorf("dispatched = %v, want [copied text]", disp.dispatched)
	}
	if len(disp.marked) != 0 {
		t.Errorf("marked = %v, want none when nothing was modified", disp.marked)
	}
}

func TestTickMarksRewrittenContent(t *testing.T) {
	clip := &stubClipboard{values: []string{"# markdown", "{\\rtf1 converted}"}}
	disp := &stubDispatcher{modified: true}
	svc := &Service{Clipboard: clip, Dispatcher: disp, Logger: logger.NewNop()}

	svc.Tick(context.Background(), domain.Config{})

	if len(disp.marked) != 1 || disp.marked[0] != "{\\rtf1 converted}" {
		t.Errorf("marked = %v, want the rewritten clipboard value", disp.marked)
	}
}

func TestTickSurvivesReadFailure(t *testing.T) {
	clip := &stubClipboard{err: errors.New("pasteboard gone")}
	disp := &stubDispatcher{}
	svc := &Service{Clipboard: clip, Dispatcher: disp, Logger: logger.NewNop()}

	svc.Tick(context.Background(), domain.Config{})

	if len(disp.dispatched) != 0 {
		t.Errorf("dispatched = %v, want none on read failure", disp.dispatched)
	}
}

type stubProvider struct {
	mu  sync.Mutex
	cfg domain.Config
}

func (p *stubProvider) Load(context.Context) (domain.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg, nil
}

func (p *stubProvider) set(cfg domain.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}

type countingLogger struct {
	mu    sync.Mutex
	infos map[string]int
}

func (l *countingLogger) Debug(string, map[string]interface{}) {}

func (l *countingLogger) Info(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos[msg]++
}

func (l *countingLogger) Warn(string, map[string]interface{})         {}
func (l *countingLogger) Error(string, error, map[string]interface{}) {}

func (l *countingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.infos[msg]
}

func TestMemoryTickerDisabledByDefault(t *testing.T) {
	ticker, c := memoryTicker(domain.Config{})
	if ticker != nil || c != nil {
		t.Error("expected no ticker when memory.log_usage is off")
	}

	cfg := domain.Config{Memory: domain.MemorySettings{LogUsage: true, SampleIntervalSeconds: 1}}
	ticker, c = memoryTicker(cfg)
	if ticker == nil || c == nil {
		t.Fatal("expected a running ticker when memory.log_usage is on")
	}
	ticker.Stop()
}

func TestMemorySamplingChanged(t *testing.T) {
	off := domain.Config{}
	on := domain.Config{Memory: domain.MemorySettings{LogUsage: true, SampleIntervalSeconds: 30}}
	faster := domain.Config{Memory: domain.MemorySettings{LogUsage: true, SampleIntervalSeconds: 5}}

	if !memorySamplingChanged(off, on) {
		t.Error("toggling log_usage on must reconfigure sampling")
	}
	if !memorySamplingChanged(on, faster) {
		t.Error("changing sample_interval_seconds must reconfigure sampling")
	}
	if memorySamplingChanged(on, on) {
		t.Error("identical settings must not reconfigure sampling")
	}
}

func TestRunReloadEnablesMemorySampling(t *testing.T) {
	provider := &stubProvider{cfg: domain.Config{
		General: domain.GeneralSettings{PollIntervalMS: 20},
	}}
	reload := make(chan struct{}, 1)
	log := &countingLogger{infos: map[string]int{}}
	svc := &Service{
		ConfigProvider: provider,
		Clipboard:      &stubClipboard{values: []string{""}},
		Dispatcher:     &stubDispatcher{},
		Logger:         log,
		Reload:         reload,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if got := log.count("memory usage"); got != 0 {
		t.Fatalf("memory sampled %d times while disabled", got)
	}

	provider.set(domain.Config{
		General: domain.GeneralSettings{PollIntervalMS: 20},
		Memory:  domain.MemorySettings{LogUsage: true, SampleIntervalSeconds: 1},
	})
	reload <- struct{}{}

	deadline := time.After(3 * time.Second)
	for log.count("memory usage") == 0 {
		select {
		case <-deadline:
			cancel()
			<-done
			t.Fatal("memory sampling never started after reload enabled it")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
