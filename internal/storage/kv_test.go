package storage

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKVMissingFile(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "nested", SettingsFileName))

	_, ok, err := kv.Get(SettingsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKVStoresJSONInline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFileName)
	kv := NewFileKV(path)

	require.NoError(t, kv.Set(SettingsKey, `{"work":1500}`))
	require.NoError(t, kv.Set("theme", "dark"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timerSettings":{"work":1500},"theme":"dark"}`, string(data))

	value, ok, err := kv.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)

	value, ok, err = kv.Get(SettingsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"work":1500}`, value)
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	kv := NewFileKV(path)

	_, _, err := kv.Get(SettingsKey)
	assert.ErrorIs(t, err, ErrCorruptValue)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "get", opErr.Op)

	require.NoError(t, kv.Set(SettingsKey, `{"work":60}`))
	value, ok, err := kv.Get(SettingsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"work":60}`, value)
}

func TestSQLiteKVUpsert(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), DatabaseFileName))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(SettingsKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(SettingsKey, "one"))
	require.NoError(t, kv.Set(SettingsKey, "two"))

	value, ok, err := kv.Get(SettingsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", value)
}

func TestPreferencesKV(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	kv := NewPreferencesKV(app.Preferences())

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("key", "value"))
	value, ok, err := kv.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestParseBackend(t *testing.T) {
	backend, err := ParseBackend(" SQLite ")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, backend)

	_, err = ParseBackend("redis")
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestOpenKV(t *testing.T) {
	dir := t.TempDir()

	kv, closeKV, err := OpenKV(BackendFile, dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)
	assert.NoError(t, closeKV())

	kv, closeKV, err = OpenKV(BackendSQLite, dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	assert.NoError(t, closeKV())
	assert.FileExists(t, filepath.Join(dir, DatabaseFileName))

	_, _, err = OpenKV(BackendPreferences, dir, nil)
	assert.Error(t, err)

	_, _, err = OpenKV(Backend("redis"), dir, nil)
	assert.ErrorIs(t, err, ErrUnknownStore)
}
