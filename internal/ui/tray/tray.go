package tray

import (
	"fmt"

	"focusflow/internal/core/model"

	"fyne.io/fyne/v2"
)

const menuTitle = "FocusFlow"

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons selects the tray icon per running state.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(model.Mode)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	modeItem   *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	callbacks  Callbacks
	state      model.TimerState
	hasState   bool
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem, len(model.Modes())),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	children := make([]*fyne.MenuItem, 0, len(model.Modes()))
	for _, mode := range model.Modes() {
		mode := mode
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		})
		manager.modeItems[mode] = item
		children = append(children, item)
	}
	manager.modeItem = fyne.NewMenuItem("Switch to", nil)
	manager.modeItem.ChildMenu = fyne.NewMenu("", children...)

	manager.refreshMenu()
	if icons.Paused != nil {
		host.SetSystemTrayIcon(icons.Paused)
	}

	return manager
}

// SetState updates the status label, toggle label, mode checkmarks and icon.
func (manager *Manager) SetState(state model.TimerState) {
	iconChanged := !manager.hasState || manager.state.IsRunning != state.IsRunning
	manager.state = state
	manager.hasState = true

	manager.statusItem.Label = fmt.Sprintf("Status: %s", StatusLabel(state))
	if state.IsRunning {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	for mode, item := range manager.modeItems {
		item.Checked = mode == state.Mode
	}

	if iconChanged {
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

// StatusLabel renders the tray status line, e.g. "Focus 24:59 (paused)".
func StatusLabel(state model.TimerState) string {
	status := fmt.Sprintf("%s %s", state.Mode.Label(), model.FormatClock(state.SecondsRemaining))
	if !state.IsRunning {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return status
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Paused
	if manager.state.IsRunning {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.modeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
