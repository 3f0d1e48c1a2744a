// Package views computes read-only summaries of a ledger: period filters,
// totals, category breakdowns and chart series. Every function is pure and
// recomputes from its inputs.
package views

import (
	"slices"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Summary holds income and expense totals for a set of transactions.
type Summary struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Balance core.Money `json:"balance"`
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category   string     `json:"category"`
	Amount     core.Money `json:"amount"`
	Percentage float64    `json:"percentage"`
}

// MonthlyPoint is one entry of the monthly income/expense series.
type MonthlyPoint struct {
	Period  core.Period `json:"-"`
	Income  core.Money  `json:"income"`
	Expense core.Money  `json:"expense"`
}

// availableMonths is how many months, counting the current one, are always
// offered for selection.
const availableMonths = 12

// FilterByPeriod returns the transactions dated within period, in input order.
func FilterByPeriod(txs []core.Transaction, period core.Period) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if period.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// Totals sums income and expense amounts separately.
func Totals(txs []core.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.Income = s.Income.Add(tx.Amount)
		case core.Expense:
			s.Expense = s.Expense.Add(tx.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

// CategoryBreakdown groups expenses by category, largest first. Each share's
// percentage is relative to the expense total, or 0 when that total is 0.
func CategoryBreakdown(txs []core.Transaction) []CategoryShare {
	sums := make(map[string]core.Money)
	var total core.Money
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	out := make([]CategoryShare, 0, len(sums))
	for category, amount := range sums {
		share := CategoryShare{Category: category, Amount: amount}
		if total.Cents != 0 {
			share.Percentage = float64(amount.Cents) / float64(total.Cents) * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlySeries groups all transactions by period, oldest first.
func MonthlySeries(txs []core.Transaction) []MonthlyPoint {
	byPeriod := make(map[core.Period]*MonthlyPoint)
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		p := tx.Period()
		pt, ok := byPeriod[p]
		if !ok {
			pt = &MonthlyPoint{Period: p}
			byPeriod[p] = pt
		}
		switch tx.Type {
		case core.Income:
			pt.Income = pt.Income.Add(tx.Amount)
		case core.Expense:
			pt.Expense = pt.Expense.Add(tx.Amount)
		}
	}

	out := make([]MonthlyPoint, 0, len(byPeriod))
	for _, pt := range byPeriod {
		out = append(out, *pt)
	}
	slices.SortFunc(out, func(a, b MonthlyPoint) int {
		return a.Period.Compare(b.Period)
	})
	return out
}

// AvailablePeriods returns the periods offered for selection: the current
// month, the eleven before it, and the month of every transaction, newest
// first and without duplicates.
func AvailablePeriods(txs []core.Transaction, today time.Time) []core.Period {
	current := core.PeriodOf(today)
	seen := make(map[core.Period]struct{}, availableMonths+len(txs))
	out := make([]core.Period, 0, availableMonths)

	add := func(p core.Period) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for i := 0; i < availableMonths; i++ {
		add(current.AddMonths(-i))
	}
	for _, tx := range txs {
		if !tx.Date.IsZero() {
			add(tx.Period())
		}
	}

	slices.SortFunc(out, func(a, b core.Period) int {
		return b.Compare(a)
	})
	return out
}

// AdjacentPeriods finds the neighbours of current in a newest-first list:
// prev is the next older period, next the next newer one.
func AdjacentPeriods(periods []core.Period, current core.Period) (prev, next core.Period, hasPrev, hasNext bool) {
	idx := slices.Index(periods, current)
	if idx < 0 {
		return prev, next, false, false
	}
	if idx+1 < len(periods) {
		prev, hasPrev = periods[idx+1], true
	}
	if idx > 0 {
		next, hasNext = periods[idx-1], true
	}
	return prev, next, hasPrev, hasNext
}
