// Package doctor runs environment diagnostics.
package doctor

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// Service checks that everything the monitor depends on is in place.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Clipboard      ports.Clipboard
	Notifier       ports.Notifier
	SecurityFilter ports.SecurityFilter
	Runner         ports.CommandRunner
	HistoryStore   ports.HistoryStore
	LoginItems     ports.LoginItemManager
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		if _, err := s.Clipboard.Read(); err != nil {
			checks = append(checks, warn("Clipboard", fmt.Sprintf("read failed: %v", err)))
		} else {
			checks = append(checks, ok("Clipboard", "pasteboard readable"))
		}
	} else {
		checks = append(checks, fail("Clipboard", fmt.Sprintf("not supported on %s", runtime.GOOS)))
	}

	if s.Notifier != nil && s.Notifier.Enabled() {
		checks = append(checks, ok("Notifications", "available"))
	} else {
		checks = append(checks, warn("Notifications", "unavailable on this platform"))
	}

	if s.SecurityFilter != nil {
		if _, err := s.SecurityFilter.Evaluate("probe"); err != nil {
			checks = append(checks, fail("Security rules", err.Error()))
		} else {
			checks = append(checks, ok("Security rules", "loaded"))
		}
	} else {
		checks = append(checks, warn("Security rules", "filter not initialized"))
	}

	checks = append(checks, s.historyCheck(cfg))
	checks = append(checks, s.helperCheck("textutil", "markdown conversion"))
	checks = append(checks, s.helperCheck("gofmt", "code formatting"))
	checks = append(checks, dashboardPortCheck())

	if s.LoginItems != nil {
		if s.LoginItems.Installed() {
			checks = append(checks, ok("Login item", "installed"))
		} else {
			checks = append(checks, warn("Login item", "not installed (clipd install)"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if s.HistoryStore == nil {
		return warn("History store", "not initialized")
	}
	dir := filepath.Dir(s.HistoryStore.Path())
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("History store", fmt.Sprintf("directory not writable: %v", err))
	}
	stats, err := s.HistoryStore.Stats()
	if err != nil {
		return warn("History store", err.Error())
	}
	return ok("History store", fmt.Sprintf("%s backend, %d entries", cfg.History.Backend, stats.Entries))
}

func dashboardPortCheck() domain.HealthCheck {
	addr := fmt.Sprintf("127.0.0.1:%d", domain.DefaultDashboardPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return warn("Dashboard port", fmt.Sprintf("%s already in use", addr))
	}
	_ = ln.Close()
	return ok("Dashboard port", addr+" free")
}

func (s *Service) helperCheck(name, purpose string) domain.HealthCheck {
	if s.Runner == nil {
		return warn(name, "runner not initialized")
	}
	if s.Runner.LookPath(name) {
		return ok(name, "installed")
	}
	return warn(name, purpose+" disabled without it")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
