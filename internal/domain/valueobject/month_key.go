// Package valueobject contains domain value objects for the Pocket Ledger system.
package valueobject

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthKeyLayout is the canonical YYYY-MM layout of a MonthKey.
const monthKeyLayout = "%04d-%02d"

// ErrInvalidMonthKey is returned when a string is not a YYYY-MM month key.
var ErrInvalidMonthKey = errors.New("invalid month key")

// monthNames holds the display names used by MonthKey.Label.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthKey identifies a calendar month as a fixed-width "YYYY-MM" string.
// Lexicographic order of two keys equals their chronological order.
type MonthKey string

// NewMonthKey builds a key from a year and a zero-based month index.
// Out-of-range indexes are carried into the year, so NewMonthKey(2025, 12)
// is "2026-01" and NewMonthKey(2025, -1) is "2024-12".
func NewMonthKey(year, monthIndex0 int) MonthKey {
	ordinal := year*12 + monthIndex0
	return monthKeyFromOrdinal(ordinal)
}

// MonthKeyFromTime returns the key of the month containing t.
func MonthKeyFromTime(t time.Time) MonthKey {
	return NewMonthKey(t.Year(), int(t.Month())-1)
}

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	if len(s) != 7 || s[4] != '-' {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	for i, c := range s {
		if i != 4 && (c < '0' || c > '9') {
			return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
		}
	}
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	return MonthKey(s), nil
}

// MustParseMonthKey is like ParseMonthKey but panics on malformed input.
// Intended for constants and tests.
func MustParseMonthKey(s string) MonthKey {
	k, err := ParseMonthKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Year returns the calendar year of the key.
func (k MonthKey) Year() int {
	year, _ := k.parts()
	return year
}

// MonthIndex returns the zero-based month index (0 = January).
func (k MonthKey) MonthIndex() int {
	_, month := k.parts()
	return month
}

// Ordinal returns year*12 + monthIndex, a monotonic month counter.
func (k MonthKey) Ordinal() int {
	year, month := k.parts()
	return year*12 + month
}

// Shift adds delta months to the key, rolling over years in both directions.
func (k MonthKey) Shift(delta int) MonthKey {
	return monthKeyFromOrdinal(k.Ordinal() + delta)
}

// maxOrdinal is the ordinal of "9999-12", the last fixed-width key.
const maxOrdinal = 9999*12 + 11

// ShiftWithin is Shift for untrusted deltas. It fails when the result falls
// outside the years 0000-9999, where keys would stop being fixed-width.
func (k MonthKey) ShiftWithin(delta int) (MonthKey, error) {
	ord := k.Ordinal()
	if delta < -ord || delta > maxOrdinal-ord {
		return "", fmt.Errorf("%w: %s shifted by %d", ErrInvalidMonthKey, k, delta)
	}
	return k.Shift(delta), nil
}

// Next returns the following month.
func (k MonthKey) Next() MonthKey { return k.Shift(1) }

// Prev returns the preceding month.
func (k MonthKey) Prev() MonthKey { return k.Shift(-1) }

// Before reports whether k is chronologically before other.
func (k MonthKey) Before(other MonthKey) bool { return k < other }

// After reports whether k is chronologically after other.
func (k MonthKey) After(other MonthKey) bool { return k > other }

// Label returns a human readable label such as "June 2025".
func (k MonthKey) Label() string {
	year, month := k.parts()
	return fmt.Sprintf("%s %d", monthNames[month], year)
}

// ShortName returns the upper-cased first four letters of the month name.
func (k MonthKey) ShortName() string {
	name := monthNames[k.MonthIndex()]
	if len(name) > 4 {
		name = name[:4]
	}
	return strings.ToUpper(name)
}

// Abbrev returns the three-letter month name, e.g. "Jun".
func (k MonthKey) Abbrev() string {
	return monthNames[k.MonthIndex()][:3]
}

// FirstDay returns midnight UTC of the first day of the month.
func (k MonthKey) FirstDay() time.Time {
	year, month := k.parts()
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}

// String implements fmt.Stringer.
func (k MonthKey) String() string { return string(k) }

// MonthsBetween returns the inclusive number of months from start to end,
// or 0 when end precedes start.
func MonthsBetween(start, end MonthKey) int {
	n := end.Ordinal() - start.Ordinal() + 1
	if n < 0 {
		return 0
	}
	return n
}

// parts splits a key into year and zero-based month. Keys are expected to
// have been validated; malformed keys yield zero values.
func (k MonthKey) parts() (int, int) {
	s := string(k)
	if len(s) != 7 {
		return 0, 0
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return year, 0
	}
	return year, month - 1
}

func monthKeyFromOrdinal(ordinal int) MonthKey {
	year := ordinal / 12
	month := ordinal % 12
	if month < 0 {
		month += 12
		year--
	}
	return MonthKey(fmt.Sprintf(monthKeyLayout, year, month+1))
}
