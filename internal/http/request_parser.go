package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/views"
)

var errBadRequest = errors.New("bad request")

// transactionRequest is the body of POST /transactions. A missing date
// means today.
type transactionRequest struct {
	Amount      core.Money           `json:"amount"`
	Type        core.TransactionType `json:"type"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Date        core.Date            `json:"date"`
}

func (req transactionRequest) draft(today time.Time) core.TransactionDraft {
	d := core.TransactionDraft{
		Amount:      req.Amount,
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(string(req.Type)))),
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Date:        req.Date,
	}
	if d.Date.IsZero() {
		d.Date = core.DateOf(today)
	}
	return d
}

// budgetRequest is the body of POST /budgets.
type budgetRequest struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
}

// decodeJSON reads a size-limited JSON body into dst. Field-level domain
// errors (a bad amount or date) pass through unwrapped so they map to 422.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr), isValidationError(err):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", errBadRequest)
		default:
			return fmt.Errorf("%w: malformed JSON: %v", errBadRequest, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", errBadRequest)
	}
	return nil
}

// parsePeriodParam reads ?period=. Empty yields fallback.
func parsePeriodParam(query url.Values, fallback core.Period) (core.Period, error) {
	v := strings.TrimSpace(query.Get("period"))
	if v == "" {
		return fallback, nil
	}
	p, err := core.ParsePeriod(v)
	if err != nil {
		return core.Period{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return p, nil
}

// listParams are the query parameters of GET /transactions.
type listParams struct {
	Period core.Period // zero means all periods
	Search string
	Sort   views.SortOrder
}

func parseListParams(query url.Values) (listParams, error) {
	period, err := parsePeriodParam(query, core.Period{})
	if err != nil {
		return listParams{}, err
	}
	order, err := views.ParseSortOrder(query.Get("sort"))
	if err != nil {
		return listParams{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return listParams{
		Period: period,
		Search: sanitizeInput(query.Get("q")),
		Sort:   order,
	}, nil
}
