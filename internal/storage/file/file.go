// Package file stores the ledger snapshot as a JSON file in a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	path string
}

// New returns a store writing <dir>/<storage.LedgerKey>.json.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, storage.LedgerKey+".json")}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Load implements storage.Store.
func (s *Store) Load(_ context.Context) (core.Ledger, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Ledger{}, storage.ErrNotFound
	}
	if err != nil {
		return core.Ledger{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return storage.Decode(b)
}

// Save implements storage.Store. The snapshot is written to a temporary file
// and renamed over the previous one, so readers see either snapshot whole.
func (s *Store) Save(_ context.Context, l core.Ledger) error {
	b, err := storage.Encode(l)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, storage.LedgerKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
