package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const backendSQLite = "sqlite"

// SQLiteKV stores keys in a `settings` table.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapErr(backendSQLite, "open", "", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, wrapErr(backendSQLite, "open", "", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, wrapErr(backendSQLite, "create table", "", err)
	}

	return &SQLiteKV{db: db}, nil
}

// Get returns the value stored under key.
func (kv *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapErr(backendSQLite, "get", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (kv *SQLiteKV) Set(key, value string) error {
	_, err := kv.db.Exec("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapErr(backendSQLite, "set", key, err)
}

// Close closes the database.
func (kv *SQLiteKV) Close() error {
	return kv.db.Close()
}
