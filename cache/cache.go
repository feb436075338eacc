// ABOUTME: Local SQLite snapshot cache of remote record lists
// ABOUTME: Read-only fallback for display surfaces when the remote is down
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/apexcrm/store"
)

// DefaultPath returns the XDG location of the snapshot database.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "apexcrm", "snapshot.db")
}

// Open opens (creating if needed) the snapshot database with WAL mode.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids sqlite busy errors.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			entity     TEXT NOT NULL,
			record_id  INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			fetched_at TIMESTAMP NOT NULL,
			PRIMARY KEY (entity, record_id)
		)
	`)
	return err
}

// SaveList replaces the cached list for one entity with a fresh fetch.
// The remote remains the source of truth; this is display fallback only.
func SaveList(db *sql.DB, entity string, records []store.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`DELETE FROM snapshots WHERE entity = ?`, entity); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	now := time.Now()
	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO snapshots (entity, record_id, payload, fetched_at)
			VALUES (?, ?, ?, ?)
		`, entity, record.ID(), string(payload), now); err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}

	return tx.Commit()
}

// LoadList returns the cached list for one entity, ordered by record id.
// An entity with no snapshot yields an empty slice.
func LoadList(db *sql.DB, entity string) ([]store.Record, error) {
	rows, err := db.Query(`
		SELECT payload FROM snapshots WHERE entity = ? ORDER BY record_id
	`, entity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []store.Record{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var record store.Record
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// FetchedAt returns when the entity's snapshot was written, or the zero time
// when no snapshot exists.
func FetchedAt(db *sql.DB, entity string) (time.Time, error) {
	var fetched time.Time
	err := db.QueryRow(`
		SELECT fetched_at FROM snapshots WHERE entity = ? ORDER BY fetched_at DESC LIMIT 1
	`, entity).Scan(&fetched)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return fetched, nil
}
