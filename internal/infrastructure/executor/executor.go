// Package executor runs external helper commands with a deadline.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// LocalRunner executes helpers (textutil, code formatters) on the host,
// feeding clipboard content on stdin and capturing stdout.
type LocalRunner struct {
	timeout time.Duration
}

// NewLocalRunner builds a runner; timeout defaults to DefaultCommandTimeout.
func NewLocalRunner(timeout time.Duration) *LocalRunner {
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	return &LocalRunner{timeout: timeout}
}

// Run implements ports.CommandRunner.
func (r *LocalRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s timed out after %s", name, r.timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return stdout.String(), nil
}

// LookPath reports whether the named helper is installed.
func (r *LocalRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ ports.CommandRunner = (*LocalRunner)(nil)
