package views

import (
	"errors"
	"slices"
	"strings"

	"fintrack/internal/core"
)

// SortOrder selects how a transaction list is ordered.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

var ErrInvalidSortOrder = errors.New("invalid sort order")

// ParseSortOrder accepts the four orders; empty means newest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortHighest, SortLowest:
		return o, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

// Search keeps transactions whose description or category contains term,
// ignoring case. An empty term keeps everything.
func Search(txs []core.Transaction, term string) []core.Transaction {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(txs)
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Description), term) ||
			strings.Contains(strings.ToLower(tx.Category), term) {
			out = append(out, tx)
		}
	}
	return out
}

// Sort returns a stably sorted copy of txs.
func Sort(txs []core.Transaction, order SortOrder) []core.Transaction {
	out := slices.Clone(txs)
	var cmp func(a, b core.Transaction) int
	switch order {
	case SortOldest:
		cmp = func(a, b core.Transaction) int { return a.Date.Compare(b.Date.Time) }
	case SortHighest:
		cmp = func(a, b core.Transaction) int { return compareCents(b.Amount, a.Amount) }
	case SortLowest:
		cmp = func(a, b core.Transaction) int { return compareCents(a.Amount, b.Amount) }
	default:
		cmp = func(a, b core.Transaction) int { return b.Date.Compare(a.Date.Time) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareCents(a, b core.Money) int {
	switch {
	case a.Cents < b.Cents:
		return -1
	case a.Cents > b.Cents:
		return 1
	default:
		return 0
	}
}
