// Package launchd installs clipd as a macOS login item.
package launchd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/pkg/filesystem"
	"github.com/clipd/clipd/internal/ports"
)

const agentLabel = "com.clipd.agent"

// Installer manages the LaunchAgent plist that starts the monitor at login.
type Installer struct {
	log ports.Logger
}

// NewInstaller builds the login item manager.
func NewInstaller(log ports.Logger) *Installer {
	return &Installer{log: log}
}

// Install writes the agent plist and loads it. execPath is the clipd binary
// the agent should run.
func (i *Installer) Install(execPath string) (domain.HealthCheck, error) {
	if runtime.GOOS != "darwin" {
		return check(domain.HealthWarn, "login items only supported on macOS"),
			fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}

	path := i.plistPath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return check(domain.HealthError, err.Error()), err
	}

	plist := fmt.Sprintf(plistTemplate, agentLabel, execPath)
	if err := os.WriteFile(path, []byte(plist), domain.DataFilePermissions); err != nil {
		return check(domain.HealthError, err.Error()), err
	}

	if out, err := exec.Command("launchctl", "load", "-w", path).CombinedOutput(); err != nil {
		i.log.Warn("launchctl load failed", map[string]interface{}{"output": string(out)})
		return check(domain.HealthWarn, "plist written but launchctl load failed"), nil
	}

	i.log.Info("login item installed", map[string]interface{}{"plist": path})
	return check(domain.HealthOK, "agent loaded"), nil
}

// Uninstall unloads and removes the agent plist.
func (i *Installer) Uninstall() (domain.HealthCheck, error) {
	path := i.plistPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return check(domain.HealthOK, "login item not installed"), nil
	}

	if out, err := exec.Command("launchctl", "unload", "-w", path).CombinedOutput(); err != nil {
		i.log.Warn("launchctl unload failed", map[string]interface{}{"output": string(out)})
	}
	if err := os.Remove(path); err != nil {
		return check(domain.HealthError, err.Error()), err
	}
	return check(domain.HealthOK, "agent removed"), nil
}

// Installed reports whether the agent plist exists.
func (i *Installer) Installed() bool {
	_, err := os.Stat(i.plistPath())
	return err == nil
}

func (i *Installer) plistPath() string {
	return filepath.Join(filesystem.UserHomeDir(), "Library", "LaunchAgents", agentLabel+".plist")
}

func check(status domain.HealthStatus, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: "Login item", Status: status, Details: details}
}

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>watch</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
</dict>
</plist>
`

var _ ports.LoginItemManager = (*Installer)(nil)
