package main

import (
	"fmt"
	"log/slog"
	"os"

	"focusflow/internal/platform"
)

// AutostartCmd groups the launch-at-login commands.
type AutostartCmd struct {
	Enable  AutostartEnableCmd  `cmd:"" help:"Launch FocusFlow at login"`
	Disable AutostartDisableCmd `cmd:"" help:"Stop launching FocusFlow at login"`
	Status  AutostartStatusCmd  `cmd:"" help:"Report whether FocusFlow launches at login"`
}

// AutostartEnableCmd implements 'autostart enable'.
type AutostartEnableCmd struct{}

func (cmd *AutostartEnableCmd) Run() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := platform.NewService().EnableAutostart(appName, execPath); err != nil {
		return err
	}
	slog.Info("Autostart enabled", "exec", execPath)
	return nil
}

// AutostartDisableCmd implements 'autostart disable'.
type AutostartDisableCmd struct{}

func (cmd *AutostartDisableCmd) Run() error {
	if err := platform.NewService().DisableAutostart(appName); err != nil {
		return err
	}
	slog.Info("Autostart disabled")
	return nil
}

// AutostartStatusCmd implements 'autostart status'.
type AutostartStatusCmd struct{}

func (cmd *AutostartStatusCmd) Run() error {
	enabled, err := platform.NewService().AutostartEnabled(appName)
	if err != nil {
		return err
	}
	if enabled {
		fmt.Println("autostart: enabled")
	} else {
		fmt.Println("autostart: disabled")
	}
	return nil
}
