package main

import (
	"context"
	"errors"
	"log/slog"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timekeeper"
	"focusflow/internal/notify"
	"focusflow/internal/platform"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/timerview"
	"focusflow/internal/ui/tray"
	"focusflow/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const guiEventBuffer = 32

func runGUI(options runOptions, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("FocusFlow is already running, bringing it forward")
		return platform.Activate(appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	desktopSink := notify.NewDesktop(fyneApp, nil, logger)
	eng, err := openEngine(options, fyneApp.Preferences(), desktopSink, logger)
	if err != nil {
		return err
	}
	defer eng.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eng.watchSettings(ctx, options)

	keeper := eng.keeper
	switchMode := func(mode model.Mode) {
		if err := keeper.SwitchMode(mode); err != nil {
			logger.Warn("Failed to switch mode", "mode", mode, "error", err)
		}
	}

	prefsWindow := preferences.New(fyneApp, keeper.Settings(), func(settings model.Settings) {
		applied := keeper.UpdateSettings(settings)
		if applied.NotificationsEnabled {
			go desktopSink.RequestPermission()
		}
	})

	mainWindow := fyneApp.NewWindow(appName)
	showMain := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
	}
	view := timerview.New(timerview.Callbacks{
		OnToggle:     keeper.Toggle,
		OnReset:      keeper.Reset,
		OnSwitchMode: switchMode,
		OnSettings:   prefsWindow.Show,
	})
	mainWindow.SetContent(view.Content())
	mainWindow.Resize(fyne.NewSize(380, 300))

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo(resources.LogoActive),
			Paused: resources.MustLogo(resources.LogoPaused),
		}, tray.Callbacks{
			OnShow:        showMain,
			OnPreferences: prefsWindow.Show,
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnSwitchMode:  switchMode,
			OnQuit:        fyneApp.Quit,
		})
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("System tray unsupported on this platform")
		mainWindow.SetMaster()
	}

	render := func(state model.TimerState, settings model.Settings) {
		view.Update(state, settings)
		mainWindow.SetTitle(timerview.Title(state))
		if trayManager != nil {
			trayManager.SetState(state)
		}
	}
	render(keeper.Snapshot(), keeper.Settings())

	events := keeper.Subscribe(guiEventBuffer)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				if event.Type == timekeeper.EventSettingsChange {
					prefsWindow.SyncSettings(event.Settings)
				}
				render(event.State, event.Settings)
			})
		}
	}()

	go guard.Serve(func() {
		fyne.Do(showMain)
	})

	if keeper.Settings().NotificationsEnabled {
		go desktopSink.RequestPermission()
	}
	if options.start {
		keeper.Start()
	}

	mainWindow.Show()
	logger.Info("FocusFlow started", "store", options.backend, "data_dir", options.dataDir)
	fyneApp.Run()
	return nil
}
