// Package memory is an in-process storage.Store. It keeps the last saved
// snapshot as encoded bytes so callers never share state with it.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func New() *Store {
	return &Store{}
}

// NewWithRaw seeds the store with raw snapshot bytes, valid or not.
func NewWithRaw(raw []byte) *Store {
	return &Store{data: append([]byte(nil), raw...)}
}

// Load implements storage.Store.
func (s *Store) Load(_ context.Context) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return core.Ledger{}, s.loadErr
	}
	if s.data == nil {
		return core.Ledger{}, storage.ErrNotFound
	}
	return storage.Decode(s.data)
}

// Save implements storage.Store.
func (s *Store) Save(_ context.Context, l core.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := storage.Encode(l)
	if err != nil {
		return err
	}
	s.data = b
	s.saves++
	return nil
}

// FailLoads makes every Load return err until reset with nil.
func (s *Store) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSaves makes every Save return err until reset with nil.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves reports how many snapshots were written successfully.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Raw returns a copy of the stored bytes.
func (s *Store) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
