// Package format renders ledger values for display: currency amounts with
// locale grouping, dates and period labels.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fintrack/internal/core"
)

const (
	dateLayout   = "2 Jan 2006"
	periodLayout = "January 2006"
)

type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// New builds a Formatter for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(tag),
	}, nil
}

func (f *Formatter) Locale() string {
	return f.tag.String()
}

func (f *Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Symbol returns the locale's symbol for the configured currency.
func (f *Formatter) Symbol() string {
	return strings.TrimSpace(f.printer.Sprint(currency.Symbol(f.unit)))
}

// Currency renders an amount such as ₹1,234.50. Negative amounts get a
// leading minus sign before the symbol.
func (f *Formatter) Currency(m core.Money) string {
	sign := ""
	if m.Cents < 0 {
		sign = "-"
		m.Cents = -m.Cents
	}
	return sign + f.Symbol() + f.printer.Sprintf("%.*f", f.scale, m.Float())
}

// Date renders a calendar day as "5 Mar 2024".
func (f *Formatter) Date(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Period renders a month label such as "March 2024".
func (f *Formatter) Period(p core.Period) string {
	if p.IsZero() {
		return ""
	}
	return p.Start().Format(periodLayout)
}

// Percent renders a 0-100 ratio with no decimals.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.0f%%", v)
}
