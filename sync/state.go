// ABOUTME: Local sync state tracking which Google resources were imported
// ABOUTME: Badger-backed map of People resource name to CRM record id
package sync

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
)

// State records which Google resources have already been imported so repeat
// syncs skip them. Keys are People API resource names, values are record ids.
type State struct {
	db *badger.DB
}

// StatePath returns the XDG location of the sync state database.
func StatePath() string {
	return filepath.Join(xdg.DataHome, "apexcrm", "sync-state")
}

// OpenState opens (creating if needed) the sync state database.
func OpenState(path string) (*State, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's default logger is too chatty for a CLI

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync state: %w", err)
	}

	return &State{db: db}, nil
}

// Close releases the underlying database.
func (s *State) Close() error {
	return s.db.Close()
}

// Imported returns the CRM record id a resource was imported as, or 0 when
// the resource has never been imported.
func (s *State) Imported(resourceName string) (int, error) {
	var id int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resourceName))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			n, err := strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("corrupt sync state for %s: %w", resourceName, err)
			}
			id = n
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// MarkImported records that a resource maps to a CRM record.
func (s *State) MarkImported(resourceName string, recordID int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(resourceName), []byte(strconv.Itoa(recordID)))
	})
}
