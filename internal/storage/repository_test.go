package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "fintrack.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty database, got %v", err)
	}

	l := core.Ledger{
		Transactions: []core.Transaction{{
			ID: "t1", Amount: core.NewMoney(500), Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 3, 5),
		}},
		Budgets: []core.Budget{{ID: "b1", Category: "Food", Amount: core.NewMoney(2000), Spent: core.NewMoney(500)}},
	}
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	l.Budgets[0].Spent = core.Money{}
	l.Transactions = nil
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Transactions) != 0 || got.Transactions == nil {
		t.Fatalf("expected empty, non-nil transactions, got %+v", got.Transactions)
	}
	if len(got.Budgets) != 1 || got.Budgets[0].Spent != (core.Money{}) {
		t.Fatalf("expected the latest snapshot, got %+v", got.Budgets)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	for i := 0; i < 2; i++ {
		if err := RunMigrations(path); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM kv`).Scan(&n); err != nil || n != 0 {
		t.Fatalf("expected empty kv table, got n=%d err=%v", n, err)
	}
}

func TestSQLiteRepositoryCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if _, err := repo.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, LedgerKey, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if got := LoadOrEmpty(ctx, repo, nil); len(got.Transactions) != 0 || len(got.Budgets) != 0 {
		t.Fatalf("expected empty ledger fallback, got %+v", got)
	}
}
