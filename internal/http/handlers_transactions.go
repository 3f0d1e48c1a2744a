package http

import (
	"net/http"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/views"
)

// transactionView is a transaction plus its display labels.
type transactionView struct {
	core.Transaction
	AmountLabel string `json:"amount_label"`
	DateLabel   string `json:"date_label"`
}

type transactionListResponse struct {
	Period       string            `json:"period,omitempty"`
	Count        int               `json:"count"`
	Transactions []transactionView `json:"transactions"`
}

func (s *Server) transactionView(tx core.Transaction) transactionView {
	return transactionView{
		Transaction: tx,
		AmountLabel: s.formatter.Currency(tx.Amount),
		DateLabel:   s.formatter.Date(tx.Date),
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	txs := s.tracker.Transactions()
	if !params.Period.IsZero() {
		txs = views.FilterByPeriod(txs, params.Period)
	}
	txs = views.Sort(views.Search(txs, params.Search), params.Sort)

	resp := transactionListResponse{
		Count:        len(txs),
		Transactions: make([]transactionView, 0, len(txs)),
	}
	if !params.Period.IsZero() {
		resp.Period = params.Period.Key()
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, s.transactionView(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	tx, err := s.tracker.AddTransaction(r.Context(), req.draft(s.now()))
	if err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Transaction rejected", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction("", string(req.Type), req.Category, req.Amount.Cents).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.transactionView(tx))
}

// handleDeleteTransaction answers 204 whether or not the id existed.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.tracker.DeleteTransaction(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
