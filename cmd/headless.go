package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timekeeper"
	"focusflow/internal/notify"
	"focusflow/internal/platform"
)

const headlessEventBuffer = 16

// runHeadless runs the cycle without a window until SIGINT or SIGTERM. With
// nobody to press start, each new interval begins automatically.
func runHeadless(options runOptions, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("acquire single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng, err := openEngine(options, nil, notify.NewLog(logger), logger)
	if err != nil {
		return err
	}
	defer eng.close()
	eng.watchSettings(ctx, options)

	keeper := eng.keeper
	events := keeper.Subscribe(headlessEventBuffer)
	go guard.Serve(func() {
		logger.Info("Another instance asked for status", "status", statusLine(keeper.Snapshot()))
	})

	keeper.Start()
	logger.Info("FocusFlow running headless", "store", options.backend, "data_dir", options.dataDir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, stopping timer", "status", statusLine(keeper.Snapshot()))
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			logEvent(logger, event)
			if continueAfter(event) {
				keeper.Start()
			}
		}
	}
}

// continueAfter reports whether the headless loop should restart the timer.
func continueAfter(event timekeeper.Event) bool {
	return event.Type == timekeeper.EventStateChange && !event.State.IsRunning && event.State.SecondsRemaining > 0
}

func logEvent(logger *slog.Logger, event timekeeper.Event) {
	state := event.State
	switch event.Type {
	case timekeeper.EventSessionComplete:
		logger.Info("Focus session complete", "sessions", state.SessionsCompleted)
	case timekeeper.EventStateChange:
		logger.Info("Timer state changed",
			"mode", state.Mode,
			"remaining", model.FormatClock(state.SecondsRemaining),
			"running", state.IsRunning)
	case timekeeper.EventSettingsChange:
		logger.Info("Timer settings changed",
			"work", event.Settings.WorkSeconds,
			"short_break", event.Settings.ShortBreakSeconds,
			"long_break", event.Settings.LongBreakSeconds,
			"long_break_interval", event.Settings.LongBreakInterval)
	case timekeeper.EventProgress:
		level := slog.LevelDebug
		if state.SecondsRemaining%60 == 0 {
			level = slog.LevelInfo
		}
		logger.Log(context.Background(), level, "Timer progress", "status", statusLine(state))
	}
}

func statusLine(state model.TimerState) string {
	status := fmt.Sprintf("%s %s", state.Mode.Label(), model.FormatClock(state.SecondsRemaining))
	if !state.IsRunning {
		status += " (paused)"
	}
	return fmt.Sprintf("%s, %d sessions", status, state.SessionsCompleted)
}
