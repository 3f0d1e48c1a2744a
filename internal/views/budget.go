package views

import (
	"math"

	"fintrack/internal/core"
)

// BudgetStatus is the traffic-light band of a budget's usage.
type BudgetStatus string

const (
	StatusOK      BudgetStatus = "ok"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

const (
	warningThreshold = 70.0
	overThreshold    = 90.0
)

// Progress describes how much of a budget has been used.
type Progress struct {
	Percentage float64      `json:"percentage"`
	Status     BudgetStatus `json:"status"`
}

// BudgetProgress reports spent as a share of the ceiling, capped to [0, 100].
// The status uses the uncapped ratio.
func BudgetProgress(b core.Budget) Progress {
	var ratio float64
	if b.Amount.Cents > 0 {
		ratio = float64(b.Spent.Cents) / float64(b.Amount.Cents) * 100
	}

	status := StatusOK
	switch {
	case ratio >= overThreshold:
		status = StatusOver
	case ratio >= warningThreshold:
		status = StatusWarning
	}
	return Progress{
		Percentage: math.Max(0, math.Min(ratio, 100)),
		Status:     status,
	}
}

// UnbudgetedCategories returns the categories that have no budget yet, in
// input order.
func UnbudgetedCategories(categories []string, budgets []core.Budget) []string {
	taken := make(map[string]struct{}, len(budgets))
	for _, b := range budgets {
		taken[b.Category] = struct{}{}
	}
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := taken[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
