package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"focusflow/internal/core/model"
)

// SettingsKey is the single key holding the serialized settings.
const SettingsKey = "timerSettings"

// KV is a minimal string key-value store.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type settingsBlob struct {
	Work              *int  `json:"work,omitempty"`
	ShortBreak        *int  `json:"shortBreak,omitempty"`
	LongBreak         *int  `json:"longBreak,omitempty"`
	LongBreakInterval *int  `json:"longBreakInterval,omitempty"`
	Notifications     *bool `json:"notifications,omitempty"`
	Sound             *bool `json:"sound,omitempty"`
}

// SettingsStore persists timer settings as one JSON blob in a KV backend.
type SettingsStore struct {
	kv     KV
	logger *slog.Logger
}

// NewSettingsStore wraps kv. A nil logger uses slog.Default.
func NewSettingsStore(kv KV, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsStore{kv: kv, logger: logger}
}

// Load reads settings. Missing or corrupt data yields defaults.
func (store *SettingsStore) Load() model.Settings {
	raw, ok, err := store.kv.Get(SettingsKey)
	if err != nil {
		store.logger.Warn("read settings, using defaults", "error", err)
		return model.DefaultSettings()
	}
	if !ok {
		return model.DefaultSettings()
	}

	settings, err := DecodeSettings([]byte(raw))
	if err != nil {
		store.logger.Warn("decode settings, using defaults", "error", err)
		return model.DefaultSettings()
	}
	return settings
}

// Save writes settings.
func (store *SettingsStore) Save(settings model.Settings) error {
	encoded, err := EncodeSettings(settings)
	if err != nil {
		return err
	}
	if err := store.kv.Set(SettingsKey, string(encoded)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// EncodeSettings serializes settings into the persisted JSON shape.
func EncodeSettings(settings model.Settings) ([]byte, error) {
	blob := settingsBlob{
		Work:              &settings.WorkSeconds,
		ShortBreak:        &settings.ShortBreakSeconds,
		LongBreak:         &settings.LongBreakSeconds,
		LongBreakInterval: &settings.LongBreakInterval,
		Notifications:     &settings.NotificationsEnabled,
		Sound:             &settings.SoundEnabled,
	}
	encoded, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return encoded, nil
}

// DecodeSettings parses the persisted JSON shape. Fields that are missing or
// not positive keep their default value.
func DecodeSettings(data []byte) (model.Settings, error) {
	settings := model.DefaultSettings()

	var blob settingsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return settings, fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}

	applyPositive(&settings.WorkSeconds, blob.Work)
	applyPositive(&settings.ShortBreakSeconds, blob.ShortBreak)
	applyPositive(&settings.LongBreakSeconds, blob.LongBreak)
	applyPositive(&settings.LongBreakInterval, blob.LongBreakInterval)
	if blob.Notifications != nil {
		settings.NotificationsEnabled = *blob.Notifications
	}
	if blob.Sound != nil {
		settings.SoundEnabled = *blob.Sound
	}
	return settings, nil
}

func applyPositive(target *int, value *int) {
	if value != nil && *value > 0 {
		*target = *value
	}
}
