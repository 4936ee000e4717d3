package app

import (
	"context"
	"path/filepath"

	"github.com/clipd/clipd/internal/application/doctor"
	"github.com/clipd/clipd/internal/application/monitor"
	"github.com/clipd/clipd/internal/infrastructure/cache"
	"github.com/clipd/clipd/internal/infrastructure/config"
	"github.com/clipd/clipd/internal/infrastructure/dispatch"
	"github.com/clipd/clipd/internal/infrastructure/executor"
	"github.com/clipd/clipd/internal/infrastructure/history"
	"github.com/clipd/clipd/internal/infrastructure/launchd"
	"github.com/clipd/clipd/internal/infrastructure/notify"
	"github.com/clipd/clipd/internal/infrastructure/pasteboard"
	"github.com/clipd/clipd/internal/infrastructure/processors"
	"github.com/clipd/clipd/internal/infrastructure/security"
	"github.com/clipd/clipd/internal/pkg/filesystem"
	"github.com/clipd/clipd/internal/pkg/logger"
	"github.com/clipd/clipd/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	ConfigWatcher  *config.Watcher
	HistoryStore   ports.HistoryStore
	Dispatcher     ports.Dispatcher
	MonitorService *monitor.Service
	DoctorService  *doctor.Service
	Clipboard      ports.RichClipboard
	Notifier       ports.Notifier
	Runner         ports.CommandRunner
	LoginItems     ports.LoginItemManager
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	clip := pasteboard.New()
	notifier := notify.New()
	runner := executor.NewLocalRunner(cfg.ProcessTimeout())
	loginItems := launchd.NewInstaller(log)

	var store ports.HistoryStore
	if cfg.History.Backend == "sqlite" {
		dbPath := cfg.History.FilePath
		if filepath.Ext(dbPath) == ".json" {
			dbPath = dbPath[:len(dbPath)-len(".json")] + ".db"
		}
		store = history.NewSQLiteStore(dbPath, cfg.History.MaxItems, cfg.History.MaxContentLength)
	} else {
		store = history.NewFileStore(cfg.History.FilePath, cfg.History.MaxItems, cfg.History.MaxContentLength)
	}

	filter, err := security.NewFilter(cfg.Security.RulesFile)
	if err != nil {
		filter, err = security.NewFilter("")
		if err != nil {
			return nil, err
		}
	}

	renderCache := cache.NewFileCache(filepath.Join(filesystem.SupportDir(), "cache", "render"))

	dispatcher := dispatch.New(log)
	dispatcher.Register(processors.NewMarkdown(clip, runner, renderCache, log))
	dispatcher.Register(processors.NewCodeFormat(clip, runner, log))
	dispatcher.Register(processors.NewDiagram(notifier, log))
	dispatcher.Register(processors.NewHistoryTracker(store, filter, notifier, log))

	watcher, err := config.NewWatcher(cfgLoader.Path(), log)
	if err != nil {
		log.Warn("config watcher unavailable", map[string]interface{}{"error": err.Error()})
		watcher = nil
	}

	monitorService := &monitor.Service{
		ConfigProvider: cfgLoader,
		Clipboard:      clip,
		Dispatcher:     dispatcher,
		Logger:         log,
	}
	if watcher != nil {
		monitorService.Reload = watcher.Reload()
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Clipboard:      clip,
		Notifier:       notifier,
		SecurityFilter: filter,
		Runner:         runner,
		HistoryStore:   store,
		LoginItems:     loginItems,
	}

	return &Container{
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		ConfigWatcher:  watcher,
		HistoryStore:   store,
		Dispatcher:     dispatcher,
		MonitorService: monitorService,
		DoctorService:  doctorService,
		Clipboard:      clip,
		Notifier:       notifier,
		Runner:         runner,
		LoginItems:     loginItems,
		Logger:         log,
	}, nil
}
