package core

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"2024-03", Period{2024, time.March}, true},
		{"March 2024", Period{2024, time.March}, true},
		{" 2023-12 ", Period{2023, time.December}, true},
		{"2024-13", Period{}, false},
		{"march", Period{}, false},
		{"", Period{}, false},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("%q expected ErrInvalidPeriod, got %v", tc.in, err)
		}
	}
}

func TestPeriodOrderingAndArithmetic(t *testing.T) {
	jan := Period{2024, time.January}
	dec := Period{2023, time.December}

	if dec.Compare(jan) >= 0 || jan.Compare(dec) <= 0 {
		t.Fatalf("December 2023 must precede January 2024")
	}
	if jan.Compare(jan) != 0 {
		t.Fatalf("period must compare equal to itself")
	}
	if got := jan.AddMonths(-1); got != dec {
		t.Fatalf("expected %v, got %v", dec, got)
	}
	if got := dec.AddMonths(14); got != (Period{2025, time.February}) {
		t.Fatalf("unexpected %v", got)
	}
	if jan.Key() != "2024-01" {
		t.Fatalf("unexpected key %q", jan.Key())
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{2024, time.March}
	if !p.Contains(NewDate(2024, 3, 31)) {
		t.Fatalf("expected March 31 in March")
	}
	if p.Contains(NewDate(2023, 3, 5)) {
		t.Fatalf("same month of another year must not match")
	}
	if p.Contains(Date{}) {
		t.Fatalf("zero date must not match")
	}
}
