package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// TransactionDraft is a transaction before an id has been assigned.
	TransactionDraft struct {
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}

	// Budget is a spending ceiling for one expense category. Spent is a
	// running total maintained by the ledger on every transaction add/delete.
	Budget struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
		Spent    Money  `json:"spent"`
	}

	// Ledger is the whole persisted document.
	Ledger struct {
		Transactions []Transaction `json:"transactions"`
		Budgets      []Budget      `json:"budgets"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
	ErrBudgetExists  = errors.New("budget already exists for category")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (d TransactionDraft) Validate() error {
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if err := d.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// WithID turns the draft into a transaction.
func (d TransactionDraft) WithID(id string) Transaction {
	return Transaction{
		ID:          id,
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
	}
}

// IsExpense reports whether the transaction counts against a budget.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// Period returns the calendar month the transaction falls in.
func (t Transaction) Period() Period {
	return PeriodOf(t.Date.Time)
}

// ValidateBudget checks the inputs of a new budget.
func ValidateBudget(category string, amount Money) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	return amount.Validate()
}

// EmptyLedger returns a document with non-nil, empty collections.
func EmptyLedger() Ledger {
	return Ledger{
		Transactions: []Transaction{},
		Budgets:      []Budget{},
	}
}

// Normalize replaces nil collections with empty ones so the document
// always serializes as arrays.
func (l Ledger) Normalize() Ledger {
	if l.Transactions == nil {
		l.Transactions = []Transaction{}
	}
	if l.Budgets == nil {
		l.Budgets = []Budget{}
	}
	return l
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	return Ledger{
		Transactions: append([]Transaction{}, l.Transactions...),
		Budgets:      append([]Budget{}, l.Budgets...),
	}
}

// Date is a calendar day; the time part is always UTC midnight.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD and full RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ErrInvalidDate
	}
	*d = DateOf(t)
	return nil
}
