package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

// InitDatabase initializes SQLite database and creates tables
func InitDatabase(dbPath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=1")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables
	if err := createTables(DB); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("database initialized")
	return nil
}

// createTables creates all necessary tables
func createTables(database *sql.DB) error {
	createKV := `
	CREATE TABLE IF NOT EXISTS activity_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := database.Exec(createKV); err != nil {
		return fmt.Errorf("failed to create activity_storage table: %w", err)
	}

	// Per-activity keys share the "activity_<name>_" prefix; the index
	// speeds up prefix listing.
	createIndex := `CREATE INDEX IF NOT EXISTS idx_storage_key ON activity_storage(key);`
	if _, err := database.Exec(createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	log.Debug().Msg("database tables created")
	return nil
}

// CreateTables runs the schema against an externally opened database. Used by
// tests running against in-memory SQLite.
func CreateTables(database *sql.DB) error {
	return createTables(database)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
