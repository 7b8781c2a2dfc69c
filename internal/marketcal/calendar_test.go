package marketcal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsTradingDay(t *testing.T) {
	cal := New([]time.Time{date(2026, time.January, 1)})

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"weekday", date(2025, time.December, 29), true}, // Monday
		{"saturday", date(2025, time.December, 27), false},
		{"sunday", date(2025, time.December, 28), false},
		{"holiday", date(2026, time.January, 1), false}, // Thursday, New Year
		{"day after holiday", date(2026, time.January, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsTradingDay(tt.d))
		})
	}
}

func TestNextTradingDay(t *testing.T) {
	cal := New([]time.Time{date(2026, time.January, 1)})

	tests := []struct {
		name string
		d    time.Time
		want time.Time
	}{
		{"midweek", date(2025, time.December, 23), date(2025, time.December, 24)},
		{"friday skips weekend", date(2025, time.December, 26), date(2025, time.December, 29)},
		{"saturday", date(2025, time.December, 27), date(2025, time.December, 29)},
		{"holiday eve skips new year", date(2025, time.December, 31), date(2026, time.January, 2)},
		{"from trading day is strictly after", date(2025, time.December, 29), date(2025, time.December, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.NextTradingDay(tt.d))
		})
	}
}

func TestNextTradingDayStrictlyMonotonic(t *testing.T) {
	cal := New(nil)
	d := date(2025, time.December, 1)
	for i := 0; i < 60; i++ {
		next := cal.NextTradingDay(d)
		require.True(t, next.After(d), "next trading day after %s must advance", d)
		assert.True(t, cal.IsTradingDay(next))
		d = next
	}
}

func TestNextTradingDayNeverWeekendOrHoliday(t *testing.T) {
	holidays := []time.Time{
		date(2026, time.January, 1),
		date(2026, time.February, 16),
		date(2026, time.February, 17),
	}
	cal := New(holidays)

	d := date(2025, time.December, 20)
	for i := 0; i < 90; i++ {
		d = cal.NextTradingDay(d)
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
		for _, h := range holidays {
			assert.False(t, d.Equal(h), "returned holiday %s", h)
		}
	}
}

func TestLoadHolidays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.yaml")
	content := "holidays:\n  - \"2026-01-01\"\n  - \"115/02/16\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cal, err := LoadHolidays(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cal.HolidayCount())
	assert.False(t, cal.IsTradingDay(date(2026, time.January, 1)))
	assert.False(t, cal.IsTradingDay(date(2026, time.February, 16))) // ROC entry
}

func TestLoadHolidaysRejectsBadEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holidays:\n  - \"not-a-date\"\n"), 0644))

	_, err := LoadHolidays(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid holiday entry")
}

func TestLoadHolidaysMissingFile(t *testing.T) {
	_, err := LoadHolidays(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
