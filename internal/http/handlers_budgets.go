package http

import (
	"errors"
	"net/http"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/views"
)

type budgetView struct {
	core.Budget
	Progress      views.Progress `json:"progress"`
	ProgressLabel string         `json:"progress_label"`
	AmountLabel   string         `json:"amount_label"`
	SpentLabel    string         `json:"spent_label"`
}

func (s *Server) budgetView(b core.Budget) budgetView {
	progress := views.BudgetProgress(b)
	return budgetView{
		Budget:        b,
		Progress:      progress,
		ProgressLabel: s.formatter.Percent(progress.Percentage),
		AmountLabel:   s.formatter.Currency(b.Amount),
		SpentLabel:    s.formatter.Currency(b.Spent),
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := s.tracker.Budgets()
	out := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, s.budgetView(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"budgets": out})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	b, err := s.tracker.AddBudget(r.Context(), sanitizeInput(req.Category), req.Amount)
	if err != nil {
		errType := applog.ErrorTypeValidation
		if errors.Is(err, core.ErrBudgetExists) {
			errType = applog.ErrorTypeConflict
		}
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Budget rejected", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithBudget("", req.Category, req.Amount.Cents, 0).
			WithErrorType(errType).
			WithError(err).
			ToSlice()...)
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.budgetView(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	s.tracker.DeleteBudget(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handleUnbudgetedCategories lists the default expense categories that can
// still receive a budget.
func (s *Server) handleUnbudgetedCategories(w http.ResponseWriter, r *http.Request) {
	categories := views.UnbudgetedCategories(core.CategoriesFor(core.Expense), s.tracker.Budgets())
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
