package marketcal

import (
	"time"

	"dispocli/internal/dates"
)

// Calendar answers trading-day questions for one run. It is built once from
// an explicit holiday set and never mutated afterwards, so it is safe to
// share across goroutines.
type Calendar struct {
	holidays map[string]struct{}
}

const dayKeyFormat = "2006-01-02"

// New builds a Calendar from the supplied non-trading dates. Weekends are
// implied and need not be listed.
func New(holidays []time.Time) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format(dayKeyFormat)] = struct{}{}
	}
	return &Calendar{holidays: set}
}

// IsTradingDay reports whether the market is open on d's calendar date.
func (c *Calendar) IsTradingDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, closed := c.holidays[d.Format(dayKeyFormat)]
	return !closed
}

// NextTradingDay returns the first trading day strictly after d. The weekly
// pattern bounds the scan: it terminates within the holiday span plus one
// week.
func (c *Calendar) NextTradingDay(d time.Time) time.Time {
	next := dates.Midnight(d)
	for {
		next = next.AddDate(0, 0, 1)
		if c.IsTradingDay(next) {
			return next
		}
	}
}

// HolidayCount returns the number of explicit holidays loaded.
func (c *Calendar) HolidayCount() int {
	return len(c.holidays)
}
