package notify

import (
	"log/slog"
	"sync"

	"focusflow/internal/core/model"
	"fyne.io/fyne/v2"
)

// Permission is the desktop notification permission state.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (permission Permission) String() string {
	switch permission {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "default"
}

// PermissionRequester asks the platform for permission to show notifications.
type PermissionRequester func() (bool, error)

// AlwaysGranted is used where the platform needs no explicit consent.
func AlwaysGranted() (bool, error) {
	return true, nil
}

// Desktop shows alerts as platform notifications through fyne.
type Desktop struct {
	mu         sync.Mutex
	request    PermissionRequester
	permission Permission
	send       func(*fyne.Notification)
	logger     *slog.Logger
}

// NewDesktop creates a desktop sink for app. A nil request means AlwaysGranted.
func NewDesktop(app fyne.App, request PermissionRequester, logger *slog.Logger) *Desktop {
	if request == nil {
		request = AlwaysGranted
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		request: request,
		send:    app.SendNotification,
		logger:  logger,
	}
}

// RequestPermission asks once, while the state is still default, and returns
// the resulting state. Failures count as a denial.
func (desktop *Desktop) RequestPermission() Permission {
	desktop.mu.Lock()
	defer desktop.mu.Unlock()
	if desktop.permission != PermissionDefault {
		return desktop.permission
	}

	granted, err := desktop.request()
	switch {
	case err != nil:
		desktop.logger.Debug("notification permission request failed", "error", err)
		desktop.permission = PermissionDenied
	case granted:
		desktop.permission = PermissionGranted
	default:
		desktop.permission = PermissionDenied
	}
	return desktop.permission
}

// Deliver shows the alert. Without permission it silently does nothing.
func (desktop *Desktop) Deliver(alert model.Alert) error {
	if desktop.RequestPermission() != PermissionGranted {
		return nil
	}
	desktop.send(fyne.NewNotification(alert.Title, alert.Body))
	return nil
}
