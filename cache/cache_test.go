// ABOUTME: Tests for the SQLite snapshot cache
// ABOUTME: Covers save/load round trips and snapshot replacement
package cache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/harperreed/apexcrm/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadList(t *testing.T) {
	db := setupTestDB(t)

	records := []store.Record{
		{"Id": float64(2), "Name": "Beta"},
		{"Id": float64(1), "Name": "Alpha"},
	}
	if err := SaveList(db, "contact_c", records); err != nil {
		t.Fatalf("SaveList failed: %v", err)
	}

	loaded, err := LoadList(db, "contact_c")
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	// Ordered by record id.
	if loaded[0].ID() != 1 || loaded[1].ID() != 2 {
		t.Errorf("unexpected order: %v", loaded)
	}
	if loaded[0].String("Name") != "Alpha" {
		t.Errorf("unexpected payload: %v", loaded[0])
	}
}

func TestSaveListReplacesSnapshot(t *testing.T) {
	db := setupTestDB(t)

	if err := SaveList(db, "deal_c", []store.Record{{"Id": float64(1)}}); err != nil {
		t.Fatalf("SaveList failed: %v", err)
	}
	if err := SaveList(db, "deal_c", []store.Record{{"Id": float64(5)}}); err != nil {
		t.Fatalf("SaveList failed: %v", err)
	}

	loaded, err := LoadList(db, "deal_c")
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID() != 5 {
		t.Errorf("expected replaced snapshot, got %v", loaded)
	}
}

func TestLoadListEmpty(t *testing.T) {
	db := setupTestDB(t)

	loaded, err := LoadList(db, "task_c")
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected empty slice, got %v", loaded)
	}
}

func TestFetchedAt(t *testing.T) {
	db := setupTestDB(t)

	fetched, err := FetchedAt(db, "quote_c")
	if err != nil {
		t.Fatalf("FetchedAt failed: %v", err)
	}
	if !fetched.IsZero() {
		t.Errorf("expected zero time for missing snapshot, got %v", fetched)
	}

	if err := SaveList(db, "quote_c", []store.Record{{"Id": float64(1)}}); err != nil {
		t.Fatalf("SaveList failed: %v", err)
	}

	fetched, err = FetchedAt(db, "quote_c")
	if err != nil {
		t.Fatalf("FetchedAt failed: %v", err)
	}
	if fetched.IsZero() {
		t.Error("expected snapshot timestamp")
	}
}
