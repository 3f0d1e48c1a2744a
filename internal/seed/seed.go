// Package seed generates a plausible demo ledger.
package seed

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type Options struct {
	Transactions int
	Months       int // window ending at Today, counting the current month
	Today        time.Time
	Seed         int64 // 0 picks a random seed
}

// Result counts what was added.
type Result struct {
	Transactions int
	Budgets      int
}

// budgeted are the expense categories that get a budget when missing.
var budgeted = []string{"Food", "Groceries", "Transportation", "Entertainment"}

var budgetCeilings = map[string]float64{
	"Food":           8000,
	"Groceries":      12000,
	"Transportation": 4000,
	"Entertainment":  3000,
}

// Populate adds budgets and random transactions to svc. Amounts go through
// the ledger service so budget spent totals stay consistent.
func Populate(svc *ledger.Service, opts Options) (Result, error) {
	if opts.Months < 1 {
		return Result{}, fmt.Errorf("months must be at least 1, got %d", opts.Months)
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	f := gofakeit.New(opts.Seed)

	var res Result
	for _, category := range budgeted {
		amount, err := amountOf(budgetCeilings[category])
		if err != nil {
			return res, err
		}
		_, _, err = svc.AddBudget(category, amount)
		switch {
		case errors.Is(err, core.ErrBudgetExists):
			continue
		case err != nil:
			return res, err
		}
		res.Budgets++
	}

	current := core.PeriodOf(opts.Today)
	start := current.AddMonths(-(opts.Months - 1)).Start()
	end := core.DateOf(opts.Today).Time

	for i := 0; i < opts.Transactions; i++ {
		draft, err := randomDraft(f, start, end)
		if err != nil {
			return res, err
		}
		if _, _, err := svc.AddTransaction(draft); err != nil {
			return res, fmt.Errorf("seed transaction %d: %w", i, err)
		}
		res.Transactions++
	}
	return res, nil
}

// randomDraft draws roughly one income for every four expenses.
func randomDraft(f *gofakeit.Faker, start, end time.Time) (core.TransactionDraft, error) {
	d := core.TransactionDraft{
		Type:     core.Expense,
		Category: f.RandomString(core.DefaultExpenseCategories),
		Date:     core.DateOf(f.DateRange(start, end)),
	}
	price := f.Price(50, 5000)
	if f.Number(1, 5) == 1 {
		d.Type = core.Income
		d.Category = f.RandomString(core.DefaultIncomeCategories)
		price = f.Price(5000, 90000)
	}
	if f.Bool() {
		d.Description = f.Sentence(3)
	}

	amount, err := amountOf(price)
	if err != nil {
		return core.TransactionDraft{}, err
	}
	d.Amount = amount
	return d, nil
}

func amountOf(units float64) (core.Money, error) {
	return core.ParseAmount(strconv.FormatFloat(units, 'f', 2, 64))
}
