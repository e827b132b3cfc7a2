// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDateOr parses a DateLayout date, returning fallback when the string is
// empty.
func ParseDateOr(date string, fallback time.Time) (time.Time, error) {
	if date == "" {
		return fallback, nil
	}
	return time.Parse(DateLayout, date)
}

// MonthStart returns midnight on the first day of the month containing t, in
// t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// OffsetMonth returns the first day of the month that is the given number of
// months after the month containing t. Anchoring on day one means the result
// never overflows into the following month the way AddDate does for the 31st.
func OffsetMonth(t time.Time, months int) time.Time {
	return MonthStart(t).AddDate(0, months, 0)
}

// Format renders a date using DateLayout, or an empty string for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
