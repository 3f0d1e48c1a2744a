// Package ledger applies transaction and budget mutations to a ledger
// document and keeps every budget's spent total in step with the expense
// transactions of its category.
//
// A Service does no I/O. Each mutation returns the resulting snapshot so
// the owner can persist it explicitly.
package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// IDFunc produces identifiers unique within the process lifetime.
type IDFunc func() string

// UUID is the default IDFunc.
func UUID() string {
	return uuid.NewString()
}

type Service struct {
	state core.Ledger
	newID IDFunc
}

// New takes ownership of a copy of initial. A nil newID falls back to UUID.
func New(initial core.Ledger, newID IDFunc) *Service {
	if newID == nil {
		newID = UUID
	}
	return &Service{
		state: initial.Normalize().Clone(),
		newID: newID,
	}
}

// Snapshot returns a deep copy of the current ledger.
func (s *Service) Snapshot() core.Ledger {
	return s.state.Clone()
}

// AddTransaction validates the draft, assigns an id and puts the new
// transaction first. An expense increments the spent total of the budget
// with the same category, if there is one.
func (s *Service) AddTransaction(draft core.TransactionDraft) (core.Transaction, core.Ledger, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, s.Snapshot(), fmt.Errorf("add transaction: %w", err)
	}

	tx := draft.WithID(s.newID())
	s.state.Transactions = append([]core.Transaction{tx}, s.state.Transactions...)

	if tx.IsExpense() {
		s.adjustSpent(tx.Category, tx.Amount)
	}
	return tx, s.Snapshot(), nil
}

// DeleteTransaction removes the transaction with the given id. A missing id
// is a no-op and reports false. Removing an expense decrements the matching
// budget; the result is not clamped at zero.
func (s *Service) DeleteTransaction(id string) (core.Ledger, bool) {
	idx := -1
	for i, tx := range s.state.Transactions {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s.Snapshot(), false
	}

	tx := s.state.Transactions[idx]
	s.state.Transactions = append(s.state.Transactions[:idx:idx], s.state.Transactions[idx+1:]...)

	if tx.IsExpense() {
		s.adjustSpent(tx.Category, core.Money{Cents: -tx.Amount.Cents})
	}
	return s.Snapshot(), true
}

// AddBudget creates a budget with zero spent. It fails with
// core.ErrBudgetExists when the category already has a budget.
func (s *Service) AddBudget(category string, amount core.Money) (core.Budget, core.Ledger, error) {
	if err := core.ValidateBudget(category, amount); err != nil {
		return core.Budget{}, s.Snapshot(), fmt.Errorf("add budget: %w", err)
	}
	if _, ok := s.budgetFor(category); ok {
		return core.Budget{}, s.Snapshot(), fmt.Errorf("add budget %q: %w", category, core.ErrBudgetExists)
	}

	b := core.Budget{
		ID:       s.newID(),
		Category: category,
		Amount:   amount,
	}
	s.state.Budgets = append(s.state.Budgets, b)
	return b, s.Snapshot(), nil
}

// DeleteBudget removes the budget with the given id, leaving transactions
// untouched. A missing id is a no-op and reports false.
func (s *Service) DeleteBudget(id string) (core.Ledger, bool) {
	for i, b := range s.state.Budgets {
		if b.ID == id {
			s.state.Budgets = append(s.state.Budgets[:i:i], s.state.Budgets[i+1:]...)
			return s.Snapshot(), true
		}
	}
	return s.Snapshot(), false
}

func (s *Service) budgetFor(category string) (int, bool) {
	for i, b := range s.state.Budgets {
		if b.Category == category {
			return i, true
		}
	}
	return -1, false
}

func (s *Service) adjustSpent(category string, delta core.Money) {
	if i, ok := s.budgetFor(category); ok {
		s.state.Budgets[i].Spent = s.state.Budgets[i].Spent.Add(delta)
	}
}
