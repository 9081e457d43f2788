package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// SettingsKey is the storage key holding the global sound/animation settings.
const SettingsKey = "activitySettings"

// ActivityKey builds the storage key for per-activity scratch data.
func ActivityKey(activityName, key string) string {
	return "activity_" + activityName + "_" + key
}

// Store is durable key-value storage backed by SQLite. Values are
// JSON-serialized text; keys are either SettingsKey or ActivityKey-scoped.
type Store struct {
	database *sql.DB
}

// NewStore creates a new store on an initialized database
func NewStore(database *sql.DB) *Store {
	return &Store{
		database: database,
	}
}

// Put inserts or replaces the value under key
func (s *Store) Put(key string, value []byte) error {
	now := time.Now()

	query := `INSERT INTO activity_storage (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.database.Exec(query, key, string(value), now, now)
	if err != nil {
		return fmt.Errorf("failed to store value for %q: %w", key, err)
	}

	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("value stored")
	return nil
}

// Get returns the value under key, reporting whether it exists
func (s *Store) Get(key string) ([]byte, bool, error) {
	query := `SELECT value FROM activity_storage WHERE key = ?`

	var value string
	err := s.database.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query value for %q: %w", key, err)
	}

	return []byte(value), true, nil
}

// Delete removes the value under key; missing keys are not an error
func (s *Store) Delete(key string) error {
	query := `DELETE FROM activity_storage WHERE key = ?`
	if _, err := s.database.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete value for %q: %w", key, err)
	}
	return nil
}

// ListActivity returns all keys stored for an activity, unscoped (the
// "activity_<name>_" prefix stripped).
func (s *Store) ListActivity(activityName string) ([]string, error) {
	prefix := ActivityKey(activityName, "")

	query := `SELECT key FROM activity_storage WHERE key LIKE ? ORDER BY key`
	rows, err := s.database.Query(query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for %q: %w", activityName, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key[len(prefix):])
	}

	return keys, rows.Err()
}
