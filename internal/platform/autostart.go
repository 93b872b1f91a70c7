package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Autostart input errors.
var (
	ErrEmptyAppName  = errors.New("app name is empty")
	ErrEmptyExecPath = errors.New("exec path is empty")
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	DataDir(appName string) (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// DataDir returns the per-application directory for settings and config files.
func (service *platformService) DataDir(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, slug(appName)), nil
}

func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "focusflow"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

// loginItem registers the app to launch at login in one OS-specific way.
type loginItem interface {
	install(appName, execPath string) error
	remove(appName string) error
	installed(appName string) (bool, error)
}

// EnableAutostart registers execPath to run at login.
func (service *platformService) EnableAutostart(appName, execPath string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("enable autostart: %w", ErrEmptyAppName)
	}
	if strings.TrimSpace(execPath) == "" {
		return fmt.Errorf("enable autostart: %w", ErrEmptyExecPath)
	}
	if err := service.loginItem().install(appName, execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// DisableAutostart removes the login registration. Removing a missing one is not an error.
func (service *platformService) DisableAutostart(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("disable autostart: %w", ErrEmptyAppName)
	}
	if err := service.loginItem().remove(appName); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether a login registration exists.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	if strings.TrimSpace(appName) == "" {
		return false, fmt.Errorf("autostart status: %w", ErrEmptyAppName)
	}
	enabled, err := service.loginItem().installed(appName)
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return enabled, nil
}

// entryFile is a login item stored as one file in a per-user directory,
// as used by XDG autostart and macOS LaunchAgents.
type entryFile struct {
	dir     func() (string, error)
	name    func(appName string) string
	content func(appName, execPath string) string
}

func (entry entryFile) path(appName string) (string, error) {
	dir, err := entry.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, entry.name(appName)), nil
}

func (entry entryFile) install(appName, execPath string) error {
	path, err := entry.path(appName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(entry.content(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (entry entryFile) remove(appName string) error {
	path, err := entry.path(appName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (entry entryFile) installed(appName string) (bool, error) {
	path, err := entry.path(appName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}
