// Package storage persists the ledger document as one JSON snapshot under a
// single fixed key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// LedgerKey is the key the whole ledger document is stored under.
const LedgerKey = "finance_tracker_data"

var (
	ErrNotFound = errors.New("ledger snapshot not found")
	ErrCorrupt  = errors.New("ledger snapshot corrupt")
)

// Store loads and saves the whole ledger document. Save overwrites the
// previous snapshot; the last writer wins.
type Store interface {
	Load(ctx context.Context) (core.Ledger, error)
	Save(ctx context.Context, l core.Ledger) error
}

// Encode serialises the ledger the way every Store persists it.
func Encode(l core.Ledger) ([]byte, error) {
	b, err := json.Marshal(l.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return b, nil
}

// Decode parses a stored snapshot. Malformed data yields ErrCorrupt.
func Decode(b []byte) (core.Ledger, error) {
	var l core.Ledger
	if err := json.Unmarshal(b, &l); err != nil {
		return core.Ledger{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return l.Normalize(), nil
}

// LoadOrEmpty reads the snapshot once and falls back to an empty ledger when
// it is absent, corrupt or the store is unavailable.
func LoadOrEmpty(ctx context.Context, store Store, logger *applog.Logger) core.Ledger {
	if logger == nil {
		logger = applog.FromContext(ctx)
	}
	logger = logger.WithComponent(applog.ComponentStorage)

	l, err := store.Load(ctx)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "Ledger loaded",
			"transactions", len(l.Transactions),
			"budgets", len(l.Budgets))
		return l.Normalize()
	case errors.Is(err, ErrNotFound):
		logger.InfoContext(ctx, "No stored ledger, starting empty", applog.FieldStoreKey, LedgerKey)
	default:
		fields := applog.NewFields().
			WithOperation(applog.OpLoad).
			WithErrorType(applog.ErrorTypeStorage).
			WithError(err)
		fields[applog.FieldStoreKey] = LedgerKey
		logger.WarnContext(ctx, "Failed to load ledger, starting empty", fields.ToSlice()...)
	}
	return core.EmptyLedger()
}
