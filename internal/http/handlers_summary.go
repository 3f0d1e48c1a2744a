package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/views"
)

type periodView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type shareView struct {
	views.CategoryShare
	AmountLabel string `json:"amount_label"`
}

type summaryResponse struct {
	Period       periodView  `json:"period"`
	Income       core.Money  `json:"income"`
	Expense      core.Money  `json:"expense"`
	Balance      core.Money  `json:"balance"`
	IncomeLabel  string      `json:"income_label"`
	ExpenseLabel string      `json:"expense_label"`
	BalanceLabel string      `json:"balance_label"`
	Breakdown    []shareView `json:"breakdown"`
	Previous     *periodView `json:"previous,omitempty"`
	Next         *periodView `json:"next,omitempty"`
}

type seriesPoint struct {
	Period  periodView `json:"period"`
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

func (s *Server) periodView(p core.Period) periodView {
	return periodView{Key: p.Key(), Label: s.formatter.Period(p)}
}

func (s *Server) currentPeriod() core.Period {
	return core.PeriodOf(s.now())
}

// handleSummary reports totals and the expense breakdown for ?period=,
// defaulting to the current month.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodParam(r.URL.Query(), s.currentPeriod())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	l, version := s.tracker.View()
	key := summaryKey{version: version, period: period, current: s.currentPeriod()}
	resp := s.summaryCache.GetOrCompute(key, func() summaryResponse {
		return s.buildSummary(l.Transactions, period)
	})
	writeJSON(w, http.StatusOK, resp)
}

// summaryKey identifies a summary computation. The current period is part
// of the key because the adjacent-period links depend on today.
type summaryKey struct {
	version uint64
	period  core.Period
	current core.Period
}

func (s *Server) buildSummary(all []core.Transaction, period core.Period) summaryResponse {
	txs := views.FilterByPeriod(all, period)
	totals := views.Totals(txs)

	resp := summaryResponse{
		Period:       s.periodView(period),
		Income:       totals.Income,
		Expense:      totals.Expense,
		Balance:      totals.Balance,
		IncomeLabel:  s.formatter.Currency(totals.Income),
		ExpenseLabel: s.formatter.Currency(totals.Expense),
		BalanceLabel: s.formatter.Currency(totals.Balance),
		Breakdown:    []shareView{},
	}
	for _, share := range views.CategoryBreakdown(txs) {
		resp.Breakdown = append(resp.Breakdown, shareView{
			CategoryShare: share,
			AmountLabel:   s.formatter.Currency(share.Amount),
		})
	}

	periods := views.AvailablePeriods(all, s.now())
	prev, next, hasPrev, hasNext := views.AdjacentPeriods(periods, period)
	if hasPrev {
		pv := s.periodView(prev)
		resp.Previous = &pv
	}
	if hasNext {
		nv := s.periodView(next)
		resp.Next = &nv
	}
	return resp
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	series := views.MonthlySeries(s.tracker.Transactions())
	out := make([]seriesPoint, 0, len(series))
	for _, pt := range series {
		out = append(out, seriesPoint{
			Period:  s.periodView(pt.Period),
			Income:  pt.Income,
			Expense: pt.Expense,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": out})
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	periods := views.AvailablePeriods(s.tracker.Transactions(), s.now())
	out := make([]periodView, 0, len(periods))
	for _, p := range periods {
		out = append(out, s.periodView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current": s.periodView(s.currentPeriod()),
		"periods": out,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"income":  core.CategoriesFor(core.Income),
		"expense": core.CategoriesFor(core.Expense),
	})
}
