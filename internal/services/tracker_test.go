package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestTracker(t *testing.T, store storage.Store) *Tracker {
	t.Helper()
	return NewTracker(context.Background(), store,
		WithLogger(applog.Discard()),
		WithIDFunc(sequentialIDs()))
}

func expense(category string, units int64) core.TransactionDraft {
	return core.TransactionDraft{
		Amount:   core.NewMoney(units),
		Type:     core.Expense,
		Category: category,
		Date:     core.NewDate(2024, 3, 5),
	}
}

func TestTracker_StartsEmptyWithoutStoredData(t *testing.T) {
	tr := newTestTracker(t, memory.New())
	if got := tr.Snapshot(); len(got.Transactions) != 0 || len(got.Budgets) != 0 {
		t.Fatalf("expected empty ledger, got %+v", got)
	}
}

func TestTracker_StartsEmptyOnCorruptData(t *testing.T) {
	tr := newTestTracker(t, memory.NewWithRaw([]byte("{not json")))
	if got := tr.Snapshot(); len(got.Transactions) != 0 || len(got.Budgets) != 0 {
		t.Fatalf("expected empty ledger, got %+v", got)
	}
}

func TestTracker_StartsEmptyWhenLoadFails(t *testing.T) {
	store := memory.New()
	store.FailLoads(errors.New("disk unavailable"))
	tr := newTestTracker(t, store)
	if got := tr.Transactions(); len(got) != 0 {
		t.Fatalf("expected no transactions, got %d", len(got))
	}
}

func TestTracker_PersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tr := newTestTracker(t, store)

	b, err := tr.AddBudget(ctx, "Food", core.NewMoney(500))
	if err != nil {
		t.Fatalf("AddBudget: %v", err)
	}
	tx, err := tr.AddTransaction(ctx, expense("Food", 120))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if store.Saves() != 2 {
		t.Fatalf("saves = %d, want 2", store.Saves())
	}

	reloaded := newTestTracker(t, store)
	budgets := reloaded.Budgets()
	if len(budgets) != 1 || budgets[0].Spent.Cents != 12000 {
		t.Fatalf("unexpected budgets after reload: %+v", budgets)
	}

	if !tr.DeleteTransaction(ctx, tx.ID) {
		t.Fatalf("expected transaction to be deleted")
	}
	if !tr.DeleteBudget(ctx, b.ID) {
		t.Fatalf("expected budget to be deleted")
	}
	if store.Saves() != 4 {
		t.Fatalf("saves = %d, want 4", store.Saves())
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Transactions) != 0 || len(got.Budgets) != 0 {
		t.Fatalf("expected empty stored ledger, got %+v", got)
	}
}

func TestTracker_RejectedMutationsAreNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tr := newTestTracker(t, store)

	if _, err := tr.AddTransaction(ctx, expense("", 10)); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if _, err := tr.AddBudget(ctx, "Food", core.Money{}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if tr.DeleteTransaction(ctx, "missing") || tr.DeleteBudget(ctx, "missing") {
		t.Fatalf("deleting unknown ids must report false")
	}
	if store.Saves() != 0 {
		t.Fatalf("saves = %d, want 0", store.Saves())
	}
}

func TestTracker_DuplicateBudget(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, memory.New())

	if _, err := tr.AddBudget(ctx, "Rent", core.NewMoney(1000)); err != nil {
		t.Fatalf("AddBudget: %v", err)
	}
	if _, err := tr.AddBudget(ctx, "Rent", core.NewMoney(2000)); !errors.Is(err, core.ErrBudgetExists) {
		t.Fatalf("expected ErrBudgetExists, got %v", err)
	}
	if n := len(tr.Budgets()); n != 1 {
		t.Fatalf("budgets = %d, want 1", n)
	}
}

func TestTracker_SaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.FailSaves(errors.New("quota exceeded"))
	tr := newTestTracker(t, store)

	if _, err := tr.AddTransaction(ctx, expense("Food", 10)); err != nil {
		t.Fatalf("save failure must not surface: %v", err)
	}
	if n := len(tr.Transactions()); n != 1 {
		t.Fatalf("transactions = %d, want 1", n)
	}
	if store.Saves() != 0 {
		t.Fatalf("saves = %d, want 0", store.Saves())
	}

	store.FailSaves(nil)
	if _, err := tr.AddTransaction(ctx, expense("Food", 20)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("stored transactions = %d, want 2", len(got.Transactions))
	}
}

func TestTracker_LogsStructuredFields(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(&buf, nil)})
	store := memory.New()
	store.FailSaves(errors.New("quota exceeded"))
	tr := NewTracker(ctx, store, WithLogger(logger), WithIDFunc(sequentialIDs()))

	if _, err := tr.AddTransaction(ctx, expense("Food", 10)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"component=tracker", "operation=create", "transaction_id=id-1", "amount_cents=1000",
		"operation=persist", "error_type=storage_error", `error="quota exceeded"`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in %s", s, out)
		}
	}
}

func TestTracker_PersistsWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := memory.New()
	tr := newTestTracker(t, store)

	if _, err := tr.AddTransaction(ctx, expense("Food", 10)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if store.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", store.Saves())
	}
}

func TestTracker_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, memory.New())
	if _, err := tr.AddTransaction(ctx, expense("Food", 10)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	txs := tr.Transactions()
	txs[0].Category = "Changed"
	if tr.Transactions()[0].Category != "Food" {
		t.Fatalf("caller mutation leaked into tracker state")
	}
}

func TestTracker_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, memory.New())
	if _, err := tr.AddBudget(ctx, "Food", core.NewMoney(10000)); err != nil {
		t.Fatalf("AddBudget: %v", err)
	}

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tx, err := tr.AddTransaction(ctx, expense("Food", 3))
				if err != nil {
					t.Errorf("AddTransaction: %v", err)
					return
				}
				if i%2 == 0 {
					tr.DeleteTransaction(ctx, tx.ID)
				}
			}
		}()
	}
	wg.Wait()

	snap := tr.Snapshot()
	var sum int64
	for _, tx := range snap.Transactions {
		sum += tx.Amount.Cents
	}
	if snap.Budgets[0].Spent.Cents != sum {
		t.Fatalf("spent = %d, want %d", snap.Budgets[0].Spent.Cents, sum)
	}
	if want := workers * (perWorker / 2); len(snap.Transactions) != want {
		t.Fatalf("transactions = %d, want %d", len(snap.Transactions), want)
	}
}

func TestTracker_ViewVersion(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, memory.New())

	_, v0 := tr.View()
	tx, err := tr.AddTransaction(ctx, expense("Food", 10))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	l, v1 := tr.View()
	if v1 != v0+1 || len(l.Transactions) != 1 {
		t.Fatalf("version %d -> %d, transactions %d", v0, v1, len(l.Transactions))
	}

	tr.DeleteTransaction(ctx, "missing")
	tr.AddTransaction(ctx, expense("", 10))
	if _, v := tr.View(); v != v1 {
		t.Fatalf("no-op and rejected mutations must not bump the version, got %d want %d", v, v1)
	}

	tr.DeleteTransaction(ctx, tx.ID)
	if _, v := tr.View(); v != v1+1 {
		t.Fatalf("version = %d, want %d", v, v1+1)
	}
}
