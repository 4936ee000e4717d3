package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/pkg/logger"
)

type stubProcessor struct {
	name     string
	calls    int
	modified bool
	err      error
	panics   bool
}

func (s *stubProcessor) Name() string        { return s.name }
func (s *stubProcessor) Description() string { return "stub" }

func (s *stubProcessor) Process(ctx context.Context, content string, cfg domain.Config) (bool, error) {
	s.calls++
	if s.panics {
		panic("boom")
	}
	return s.modified, s.err
}

func testConfig() domain.Config {
	return domain.Config{
		General:     domain.GeneralSettings{MaxContentBytes: 1024},
		Performance: domain.PerformanceSettings{ProcessTimeoutSeconds: 1},
	}
}

func TestDispatchHashShortCircuit(t *testing.T) {
	proc := &stubProcessor{name: "stub"}
	d := New(logger.NewNop())
	d.Register(proc)

	d.Dispatch(context.Background(), "same content", testConfig())
	d.Dispatch(context.Background(), "same content", testConfig())

	if proc.calls != 1 {
		t.Errorf("processor called %d times for identical content, want 1", proc.calls)
	}

	d.Dispatch(context.Background(), "different content", testConfig())
	if proc.calls != 2 {
		t.Errorf("processor called %d times after distinct content, want 2", proc.calls)
	}
}

func TestDispatchEmptyContentIgnored(t *testing.T) {
	proc := &stubProcessor{name: "stub"}
	d := New(logger.NewNop())
	d.Register(proc)

	if d.Dispatch(context.Background(), "", testConfig()) {
		t.Error("Dispatch(empty) = true, want false")
	}
	if proc.calls != 0 {
		t.Errorf("processor called %d times for empty content, want 0", proc.calls)
	}
}

func TestDispatchSizeCeiling(t *testing.T) {
	proc := &stubProcessor{name: "stub"}
	d := New(logger.NewNop())
	d.Register(proc)

	big := strings.Repeat("x", 2048)
	if d.Dispatch(context.Background(), big, testConfig()) {
		t.Error("Dispatch(oversized) = true, want false")
	}
	if proc.calls != 0 {
		t.Errorf("processor called %d times for oversized content, want 0", proc.calls)
	}
}

func TestDispatchErrorIsolation(t *testing.T) {
	failing := &stubProcessor{name: "failing", err: errors.New("broken")}
	panicking := &stubProcessor{name: "panicking", panics: true}
	healthy := &stubProcessor{name: "healthy", modified: true}

	d := New(logger.NewNop())
	d.Register(failing)
	d.Register(panicking)
	d.Register(healthy)

	modified := d.Dispatch(context.Background(), "content", testConfig())

	if failing.calls != 1 || panicking.calls != 1 || healthy.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want every processor invoked once",
			failing.calls, panicking.calls, healthy.calls)
	}
	if !modified {
		t.Error("Dispatch() = false, want true when a later processor modified the clipboard")
	}
}

func TestDispatchDisabledProcessorSkipped(t *testing.T) {
	proc := &stubProcessor{name: "markdown"}
	d := New(logger.NewNop())
	d.Register(proc)

	cfg := testConfig()
	cfg.Modules.Disabled = []string{"markdown"}

	d.Dispatch(context.Background(), "content", cfg)
	if proc.calls != 0 {
		t.Errorf("disabled processor called %d times, want 0", proc.calls)
	}
}

func TestMarkProcessedSuppressesSelfTrigger(t *testing.T) {
	proc := &stubProcessor{name: "stub"}
	d := New(logger.NewNop())
	d.Register(proc)

	d.Dispatch(context.Background(), "original", testConfig())
	d.MarkProcessed("rewritten by a module")
	d.Dispatch(context.Background(), "rewritten by a module", testConfig())

	if proc.calls != 1 {
		t.Errorf("processor called %d times, want 1 (rewrite must not re-trigger)", proc.calls)
	}
}
