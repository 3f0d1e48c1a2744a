package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-05"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d != NewDate(2024, 3, 5) {
		t.Fatalf("unexpected date %v", d)
	}

	if err := json.Unmarshal([]byte(`"2024-03-05T10:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal rfc3339: %v", err)
	}
	if d != NewDate(2024, 3, 5) {
		t.Fatalf("timestamp not truncated to day: %v", d)
	}

	b, err := json.Marshal(NewDate(2024, 1, 15))
	if err != nil || string(b) != `"2024-01-15"` {
		t.Fatalf("marshal: %s %v", b, err)
	}

	if err := json.Unmarshal([]byte(`"15/01/2024"`), &d); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestTransactionDraftValidate(t *testing.T) {
	good := TransactionDraft{
		Amount:   NewMoney(500),
		Type:     Expense,
		Category: "Food",
		Date:     NewDate(2024, 3, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TransactionDraft)
		want   error
	}{
		{"zero amount", func(d *TransactionDraft) { d.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(d *TransactionDraft) { d.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"oversized amount", func(d *TransactionDraft) { d.Amount = Money{Cents: MaxAmount.Cents + 1} }, ErrInvalidAmount},
		{"bad type", func(d *TransactionDraft) { d.Type = "transfer" }, ErrInvalidType},
		{"blank category", func(d *TransactionDraft) { d.Category = "  " }, ErrEmptyCategory},
		{"zero date", func(d *TransactionDraft) { d.Date = Date{} }, ErrInvalidDate},
		{"multibyte description", func(d *TransactionDraft) { d.Description = strings.Repeat("₹", 70) }, nil},
		{"long description", func(d *TransactionDraft) { d.Description = strings.Repeat("x", 1000) }, nil},
		{"max amount", func(d *TransactionDraft) { d.Amount = MaxAmount }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := good
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLedgerJSONLayout(t *testing.T) {
	l := Ledger{
		Transactions: []Transaction{{
			ID:       "t1",
			Amount:   NewMoney(500),
			Type:     Expense,
			Category: "Food",
			Date:     NewDate(2024, 3, 5),
		}},
		Budgets: []Budget{{ID: "b1", Category: "Food", Amount: NewMoney(2000), Spent: NewMoney(500)}},
	}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"transactions":[{"id":"t1","amount":500,"type":"expense","category":"Food","description":"","date":"2024-03-05"}],"budgets":[{"id":"b1","category":"Food","amount":2000,"spent":500}]}`
	if string(b) != want {
		t.Fatalf("unexpected layout:\n got %s\nwant %s", b, want)
	}
}

func TestLedgerNormalizeAndClone(t *testing.T) {
	var l Ledger
	if err := json.Unmarshal([]byte(`{"transactions":null}`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	l = l.Normalize()
	if l.Transactions == nil || l.Budgets == nil {
		t.Fatalf("normalize left nil slices")
	}

	l.Budgets = append(l.Budgets, Budget{ID: "b1", Spent: NewMoney(1)})
	c := l.Clone()
	c.Budgets[0].Spent = NewMoney(99)
	if l.Budgets[0].Spent != NewMoney(1) {
		t.Fatalf("clone shares budget storage")
	}
}
