package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
)

// Backend names a settings KV implementation.
type Backend string

const (
	BackendPreferences Backend = "prefs"
	BackendFile        Backend = "file"
	BackendSQLite      Backend = "sqlite"
)

// File names inside the data directory.
const (
	SettingsFileName = "settings.json"
	DatabaseFileName = "settings.db"
)

// ParseBackend converts a backend name.
func ParseBackend(value string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(value))) {
	case BackendPreferences:
		return BackendPreferences, nil
	case BackendFile:
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	}
	return "", fmt.Errorf("parse backend %q: %w", value, ErrUnknownStore)
}

// OpenKV opens the backend. prefs is only needed for BackendPreferences.
// The returned close func is never nil.
func OpenKV(backend Backend, dataDir string, prefs fyne.Preferences) (KV, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendPreferences:
		if prefs == nil {
			return nil, noop, fmt.Errorf("open %s store: no application preferences available", backend)
		}
		return NewPreferencesKV(prefs), noop, nil
	case BackendFile:
		return NewFileKV(filepath.Join(dataDir, SettingsFileName)), noop, nil
	case BackendSQLite:
		kv, err := OpenSQLite(filepath.Join(dataDir, DatabaseFileName))
		if err != nil {
			return nil, noop, err
		}
		return kv, kv.Close, nil
	}
	return nil, noop, fmt.Errorf("open %q store: %w", backend, ErrUnknownStore)
}
