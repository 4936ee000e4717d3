// Package notify shows OS notifications.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/clipd/clipd/internal/ports"
)

// OSNotifier implements ports.Notifier via osascript on macOS and
// notify-send on Linux.
type OSNotifier struct{}

// New builds the notifier.
func New() *OSNotifier {
	return &OSNotifier{}
}

func (n *OSNotifier) Enabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return true
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	default:
		return false
	}
}

// Notify shows a notification. Errors are returned for logging only; the
// monitor never aborts on a failed notification.
func (n *OSNotifier) Notify(title, message string) error {
	if !n.Enabled() {
		return fmt.Errorf("notifications not supported on %s", runtime.GOOS)
	}
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", sanitize(message), sanitize(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return exec.Command("notify-send", title, message).Run()
	}
}

// sanitize strips quotes that would break the AppleScript literal and
// truncates on a rune boundary so a multi-byte character is never split.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	runes := []rune(s)
	if len(runes) > 200 {
		s = string(runes[:200])
	}
	return s
}

var _ ports.Notifier = (*OSNotifier)(nil)
