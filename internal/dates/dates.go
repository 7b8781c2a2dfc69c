package dates

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ParseError describes a date or period string that could not be resolved.
// Callers treat it as "field absent", never as a run-fatal condition.
type ParseError struct {
	Raw    string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Raw, e.Reason)
}

// rangeSeparators are the recognized period separators in preference order.
// The fullwidth wave dash and the ASCII tilde are tried before the hyphen
// because ROC-formatted sub-dates never contain either, while a hyphen may
// appear both as a field separator and as the range separator.
var rangeSeparators = []string{"～", "~", "-"}

// Normalize parses a feed date in either the ROC calendar ("115/01/01",
// "1150101") or the Gregorian calendar ("20260101", "2026-01-01") into a
// UTC midnight time. All non-digit characters are ignored; a 7-digit
// sequence is read as CCCMMDD with the year offset by 1911, an 8-digit
// sequence as YYYYMMDD. Anything else yields a ParseError.
func Normalize(raw string) (time.Time, error) {
	digits := digitsOf(raw)
	if digits == "" {
		return time.Time{}, &ParseError{Raw: raw, Reason: "no digits"}
	}

	var year, month, day int
	switch len(digits) {
	case 7: // ROC calendar
		year = atoi(digits[:3]) + 1911
		month = atoi(digits[3:5])
		day = atoi(digits[5:7])
	case 8: // Gregorian
		year = atoi(digits[:4])
		month = atoi(digits[4:6])
		day = atoi(digits[6:8])
	default:
		return time.Time{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("unexpected digit count %d", len(digits))}
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (month 13 rolls into the
	// next year), so round-trip the fields to reject invalid dates.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, &ParseError{Raw: raw, Reason: "invalid calendar date"}
	}
	return d, nil
}

// SplitPeriod parses a free-text disposal period such as
// "114/12/12～114/12/28" into its start and end dates. The first separator
// from rangeSeparators found in the text wins, and only its first
// occurrence splits the string. Both halves must normalize.
func SplitPeriod(raw string) (start, end time.Time, err error) {
	s := stripSpace(raw)
	if s == "" {
		return time.Time{}, time.Time{}, &ParseError{Raw: raw, Reason: "empty period"}
	}

	var parts []string
	for _, sep := range rangeSeparators {
		if strings.Contains(s, sep) {
			parts = strings.SplitN(s, sep, 2)
			break
		}
	}
	if len(parts) < 2 {
		return time.Time{}, time.Time{}, &ParseError{Raw: raw, Reason: "no range separator"}
	}

	start, err = Normalize(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Raw: raw, Reason: "bad start date"}
	}
	end, err = Normalize(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Raw: raw, Reason: "bad end date"}
	}
	return start, end, nil
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Midnight truncates t to UTC midnight of its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
