// Package services holds the owning caller of the ledger: it serialises
// access, applies mutations through ledger.Service and writes the resulting
// snapshot to a storage.Store.
package services

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// Tracker is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	ledger *ledger.Service
	store  storage.Store
	logger *applog.Logger
	newID  ledger.IDFunc

	// version increments on every applied mutation.
	version uint64
}

type Option func(*Tracker)

func WithLogger(l *applog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithIDFunc overrides id generation, mainly for tests.
func WithIDFunc(fn ledger.IDFunc) Option {
	return func(t *Tracker) { t.newID = fn }
}

// NewTracker loads the stored ledger once, falling back to an empty one.
func NewTracker(ctx context.Context, store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{store: store}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = applog.FromContext(ctx)
	}
	t.logger = t.logger.WithComponent(applog.ComponentTracker)

	initial := storage.LoadOrEmpty(ctx, store, t.logger)
	t.ledger = ledger.New(initial, t.newID)
	return t
}

// AddTransaction validates and records a transaction, then persists.
// Validation errors leave the ledger unchanged and nothing is written.
func (t *Tracker) AddTransaction(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, snapshot, err := t.ledger.AddTransaction(draft)
	if err != nil {
		t.logger.DebugContext(ctx, "Transaction rejected", applog.NewFields().
			WithOperation(applog.OpValidate).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
		return core.Transaction{}, err
	}

	t.logger.InfoContext(ctx, "Transaction added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithTransaction(tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents).
		ToSlice()...)
	t.version++
	t.persist(ctx, snapshot)
	return tx, nil
}

// DeleteTransaction removes a transaction by id. Unknown ids are a no-op
// and nothing is written.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot, removed := t.ledger.DeleteTransaction(id)
	if !removed {
		t.logger.DebugContext(ctx, "Transaction not found", applog.FieldTransactionID, id)
		return false
	}

	t.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTransactionID, id)
	t.version++
	t.persist(ctx, snapshot)
	return true
}

// AddBudget creates a budget for an expense category, then persists.
func (t *Tracker) AddBudget(ctx context.Context, category string, amount core.Money) (core.Budget, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, snapshot, err := t.ledger.AddBudget(category, amount)
	if err != nil {
		t.logger.DebugContext(ctx, "Budget rejected", applog.NewFields().
			WithOperation(applog.OpValidate).
			WithErrorType(budgetErrorType(err)).
			WithBudget("", category, amount.Cents, 0).
			WithError(err).
			ToSlice()...)
		return core.Budget{}, err
	}

	t.logger.InfoContext(ctx, "Budget added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithBudget(b.ID, b.Category, b.Amount.Cents, b.Spent.Cents).
		ToSlice()...)
	t.version++
	t.persist(ctx, snapshot)
	return b, nil
}

// DeleteBudget removes a budget by id. Unknown ids are a no-op.
func (t *Tracker) DeleteBudget(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot, removed := t.ledger.DeleteBudget(id)
	if !removed {
		t.logger.DebugContext(ctx, "Budget not found", applog.FieldBudgetID, id)
		return false
	}

	t.logger.InfoContext(ctx, "Budget deleted", applog.FieldBudgetID, id)
	t.version++
	t.persist(ctx, snapshot)
	return true
}

// Snapshot returns a deep copy of the current ledger.
func (t *Tracker) Snapshot() core.Ledger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Snapshot()
}

// View returns a deep copy of the ledger together with its version. Two
// calls returning the same version saw the same ledger.
func (t *Tracker) View() (core.Ledger, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Snapshot(), t.version
}

// Transactions returns a copy of all transactions, newest insert first.
func (t *Tracker) Transactions() []core.Transaction {
	return t.Snapshot().Transactions
}

// Budgets returns a copy of all budgets in creation order.
func (t *Tracker) Budgets() []core.Budget {
	return t.Snapshot().Budgets
}

// persist writes the snapshot. A failed write is logged and dropped: the
// in-memory ledger stays authoritative for the rest of the session.
func (t *Tracker) persist(ctx context.Context, l core.Ledger) {
	ctx = context.WithoutCancel(ctx)
	if err := t.store.Save(ctx, l); err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpPersist).
			WithErrorType(applog.ErrorTypeStorage).
			WithError(err)
		fields[applog.FieldStoreKey] = storage.LedgerKey
		t.logger.WarnContext(ctx, "Failed to persist ledger", fields.ToSlice()...)
	}
}

func budgetErrorType(err error) string {
	if errors.Is(err, core.ErrBudgetExists) {
		return applog.ErrorTypeConflict
	}
	return applog.ErrorTypeValidation
}
