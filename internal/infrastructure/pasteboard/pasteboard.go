// Package pasteboard adapts the system clipboard using platform tools.
package pasteboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/clipd/clipd/internal/ports"
)

// Pasteboard implements ports.RichClipboard using pbpaste/pbcopy on macOS
// and xclip/wl-clipboard on Linux.
type Pasteboard struct{}

// New builds the pasteboard adapter.
func New() *Pasteboard {
	return &Pasteboard{}
}

func (p *Pasteboard) Enabled() bool {
	switch runtime.GOOS {
	case "darwin", "linux":
		return true
	default:
		return false
	}
}

// Read returns the current clipboard text.
func (p *Pasteboard) Read() (string, error) {
	if !p.Enabled() {
		return "", fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbpaste")
	default: // linux
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard", "-o")
		} else if _, err := exec.LookPath("wl-paste"); err == nil {
			cmd = exec.Command("wl-paste", "--no-newline")
		} else {
			return "", fmt.Errorf("clipboard utilities not found")
		}
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Write copies text to the system clipboard.
func (p *Pasteboard) Write(text string) error {
	if !p.Enabled() {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default: // linux
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.Command("wl-copy")
		} else {
			return fmt.Errorf("clipboard utilities not found")
		}
	}
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}

// WriteRTF places styled content on the pasteboard. pbcopy sniffs RTF input
// and registers it under the rich-text type, which is what paste targets
// like Mail and Pages read.
func (p *Pasteboard) WriteRTF(rtf string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("rich clipboard only supported on darwin")
	}
	cmd := exec.Command("pbcopy")
	cmd.Stdin = bytes.NewBufferString(rtf)
	return cmd.Run()
}

var _ ports.RichClipboard = (*Pasteboard)(nil)
