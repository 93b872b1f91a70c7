package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"focusflow/internal/config"
	"focusflow/internal/core/timekeeper"
	"focusflow/internal/notify"
	"focusflow/internal/platform"
	"focusflow/internal/storage"
	"focusflow/resources"

	"fyne.io/fyne/v2"
)

// RunCmd implements the default 'run' command.
type RunCmd struct {
	Headless bool   `help:"Run without a window and log progress" env:"FOCUSFLOW_HEADLESS"`
	Store    string `help:"Settings backend: prefs, file or sqlite (default from config)" env:"FOCUSFLOW_STORE"`
	Start    bool   `help:"Start the focus countdown immediately" env:"FOCUSFLOW_START"`
}

func (cmd *RunCmd) Run(root *CLI) error {
	options, err := resolveRunOptions(root, cmd, platform.NewService())
	if err != nil {
		return err
	}
	logger := setupLogging(root.logLevel(options.config.SlogLevel()))
	logger.Debug("Resolved run options",
		"data_dir", options.dataDir,
		"config", options.configPath,
		"store", options.backend,
		"headless", options.headless)

	if options.headless {
		return runHeadless(options, logger)
	}
	return runGUI(options, logger)
}

type runOptions struct {
	dataDir    string
	configPath string
	config     config.AppConfig
	backend    storage.Backend
	headless   bool
	start      bool
}

// resolveRunOptions merges flags over the config file. Flags win.
func resolveRunOptions(root *CLI, cmd *RunCmd, service platform.Service) (runOptions, error) {
	dataDir := root.DataDir
	if dataDir == "" {
		resolved, err := service.DataDir(appName)
		if err != nil {
			return runOptions{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = resolved
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return runOptions{}, fmt.Errorf("create data dir: %w", err)
	}

	configPath := root.Config
	if configPath == "" {
		configPath = filepath.Join(dataDir, config.FileName)
	}
	appConfig, err := config.Load(configPath)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "path", configPath, "error", err)
	}

	storeName := cmd.Store
	if storeName == "" {
		storeName = appConfig.Store
	}
	backend, err := storage.ParseBackend(storeName)
	if err != nil {
		return runOptions{}, err
	}
	if cmd.Headless && backend == storage.BackendPreferences {
		slog.Info("Preferences store needs the GUI, using file store", "path", filepath.Join(dataDir, storage.SettingsFileName))
		backend = storage.BackendFile
	}

	return runOptions{
		dataDir:    dataDir,
		configPath: configPath,
		config:     appConfig,
		backend:    backend,
		headless:   cmd.Headless,
		start:      cmd.Start || appConfig.StartOnLaunch,
	}, nil
}

// engine bundles the timer with its store and alert dispatcher.
type engine struct {
	keeper     *timekeeper.TimeKeeper
	dispatcher *notify.Dispatcher
	closeStore func() error
	logger     *slog.Logger
}

// openEngine wires store, dispatcher and timer. desktop receives alerts that
// ask for a visible notification.
func openEngine(options runOptions, prefs fyne.Preferences, desktop notify.Sink, logger *slog.Logger) (*engine, error) {
	kv, closeStore, err := storage.OpenKV(options.backend, options.dataDir, prefs)
	if err != nil {
		return nil, err
	}
	store := storage.NewSettingsStore(kv, logger)

	dispatcherOptions := notify.Options{
		Desktop:   desktop,
		QueueSize: options.config.NotifyQueue,
		Logger:    logger,
	}
	if sound, err := notify.NewSound(resources.AlertSound()); err != nil {
		logger.Warn("Alert sound unavailable", "error", err)
	} else {
		dispatcherOptions.Sound = sound
	}
	dispatcher := notify.NewDispatcher(dispatcherOptions)
	dispatcher.Start()

	keeper := timekeeper.New(store, dispatcher, timekeeper.Config{
		TickInterval: options.config.TickInterval,
		Logger:       logger,
	})

	return &engine{
		keeper:     keeper,
		dispatcher: dispatcher,
		closeStore: closeStore,
		logger:     logger,
	}, nil
}

// watchSettings reloads settings edited outside the app. Only the file
// backend is watched.
func (eng *engine) watchSettings(ctx context.Context, options runOptions) {
	if options.backend != storage.BackendFile || !options.config.WatchSettings {
		return
	}
	path := filepath.Join(options.dataDir, storage.SettingsFileName)
	watcher, err := storage.NewFileWatcher(path, options.config.WatchDebounce, func() {
		settings := eng.keeper.ReloadSettings()
		eng.logger.Info("Settings reloaded", "path", path, "work", settings.WorkSeconds, "interval", settings.LongBreakInterval)
	}, eng.logger)
	if err != nil {
		eng.logger.Warn("Settings watcher unavailable", "error", err)
		return
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			eng.logger.Warn("Settings watcher stopped", "error", err)
		}
	}()
}

func (eng *engine) close() {
	eng.keeper.Close()
	eng.dispatcher.Close()
	if err := eng.closeStore(); err != nil {
		eng.logger.Warn("Failed to close settings store", "error", err)
	}
}
