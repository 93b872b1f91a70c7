package storage

import "fyne.io/fyne/v2"

// PreferencesKV stores keys in the fyne application preferences.
type PreferencesKV struct {
	prefs fyne.Preferences
}

// NewPreferencesKV wraps the preferences of a fyne app.
func NewPreferencesKV(prefs fyne.Preferences) *PreferencesKV {
	return &PreferencesKV{prefs: prefs}
}

// Get returns the value stored under key. Empty values count as absent.
func (kv *PreferencesKV) Get(key string) (string, bool, error) {
	value := kv.prefs.String(key)
	return value, value != "", nil
}

// Set stores value under key.
func (kv *PreferencesKV) Set(key, value string) error {
	kv.prefs.SetString(key, value)
	return nil
}
