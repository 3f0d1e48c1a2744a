package format

import (
	"strings"
	"testing"

	"fintrack/internal/core"
)

func newFormatter(t *testing.T, locale, currencyCode string) *Formatter {
	t.Helper()
	f, err := New(locale, currencyCode)
	if err != nil {
		t.Fatalf("New(%q, %q): %v", locale, currencyCode, err)
	}
	return f
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		currency string
		wantErr  bool
	}{
		{"indian rupee", "en-IN", "INR", false},
		{"us dollar", "en-US", "USD", false},
		{"bad locale", "not a locale!", "USD", true},
		{"bad currency", "en-US", "XYZW", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.locale, tt.currency)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatter_Currency(t *testing.T) {
	f := newFormatter(t, "en-US", "USD")

	got := f.Currency(core.Money{Cents: 123450})
	if !strings.HasSuffix(got, "1,234.50") {
		t.Errorf("Currency(1234.50) = %q, want grouped amount with two decimals", got)
	}
	if !strings.Contains(got, "$") {
		t.Errorf("Currency(1234.50) = %q, want dollar symbol", got)
	}

	neg := f.Currency(core.Money{Cents: -500})
	if !strings.HasPrefix(neg, "-") || !strings.HasSuffix(neg, "5.00") {
		t.Errorf("Currency(-5) = %q, want leading minus", neg)
	}

	if zero := f.Currency(core.Money{}); !strings.HasSuffix(zero, "0.00") {
		t.Errorf("Currency(0) = %q", zero)
	}
}

func TestFormatter_CurrencyScale(t *testing.T) {
	f := newFormatter(t, "en-US", "JPY")
	got := f.Currency(core.NewMoney(1500))
	if strings.Contains(got, ".") {
		t.Errorf("Currency in JPY = %q, want no minor units", got)
	}
}

func TestFormatter_Date(t *testing.T) {
	f := newFormatter(t, "en-IN", "INR")
	if got := f.Date(core.NewDate(2024, 3, 5)); got != "5 Mar 2024" {
		t.Errorf("Date() = %q, want %q", got, "5 Mar 2024")
	}
	if got := f.Date(core.Date{}); got != "" {
		t.Errorf("Date(zero) = %q, want empty", got)
	}
}

func TestFormatter_Period(t *testing.T) {
	f := newFormatter(t, "en-IN", "INR")
	p := core.Period{Year: 2024, Month: 3}
	if got := f.Period(p); got != "March 2024" {
		t.Errorf("Period() = %q, want %q", got, "March 2024")
	}
}

func TestFormatter_Percent(t *testing.T) {
	f := newFormatter(t, "en-US", "USD")
	if got := f.Percent(72.4); got != "72%" {
		t.Errorf("Percent() = %q, want 72%%", got)
	}
}

func TestFormatter_Codes(t *testing.T) {
	f := newFormatter(t, "en-IN", "INR")
	if f.CurrencyCode() != "INR" {
		t.Errorf("CurrencyCode() = %q", f.CurrencyCode())
	}
	if f.Locale() != "en-IN" {
		t.Errorf("Locale() = %q", f.Locale())
	}
}
