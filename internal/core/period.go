package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is a calendar month of a given year. Two dates belong to the same
// period iff their year and month are equal.
type Period struct {
	Year  int
	Month time.Month
}

var ErrInvalidPeriod = errors.New("invalid period")

const (
	periodKeyLayout   = "2006-01"
	periodLabelLayout = "January 2006"
)

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod accepts "2006-01" or an English label like "January 2006".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{periodKeyLayout, periodLabelLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return PeriodOf(t), nil
		}
	}
	return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Start returns the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves the period by n calendar months (negative goes back).
func (p Period) AddMonths(n int) Period {
	return PeriodOf(p.Start().AddDate(0, n, 0))
}

// Contains reports whether d falls in the period.
func (p Period) Contains(d Date) bool {
	return !d.IsZero() && PeriodOf(d.Time) == p
}

// Compare orders periods by calendar time: -1 if p is earlier, 1 if later.
func (p Period) Compare(o Period) int {
	switch {
	case p.Year != o.Year:
		if p.Year < o.Year {
			return -1
		}
		return 1
	case p.Month < o.Month:
		return -1
	case p.Month > o.Month:
		return 1
	default:
		return 0
	}
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Key returns the period as YYYY-MM.
func (p Period) Key() string {
	return p.Start().Format(periodKeyLayout)
}

func (p Period) String() string {
	return p.Key()
}
