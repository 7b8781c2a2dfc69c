package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "ROC with slashes",
			raw:  "115/01/01",
			want: date(2026, time.January, 1),
		},
		{
			name: "ROC compact",
			raw:  "1150101",
			want: date(2026, time.January, 1),
		},
		{
			name: "Gregorian compact",
			raw:  "20260101",
			want: date(2026, time.January, 1),
		},
		{
			name: "Gregorian with hyphens",
			raw:  "2025-12-26",
			want: date(2025, time.December, 26),
		},
		{
			name: "ROC with dots",
			raw:  "114.12.28",
			want: date(2025, time.December, 28),
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "no digits",
			raw:     "n/a",
			wantErr: true,
		},
		{
			name:    "too few digits",
			raw:     "115/01",
			wantErr: true,
		},
		{
			name:    "too many digits",
			raw:     "202601011",
			wantErr: true,
		},
		{
			name:    "invalid month",
			raw:     "1151301",
			wantErr: true,
		},
		{
			name:    "invalid day",
			raw:     "20260132",
			wantErr: true,
		},
		{
			name:    "february 30",
			raw:     "20260230",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var perr *ParseError
				assert.ErrorAs(t, err, &perr)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeROCMatchesGregorian(t *testing.T) {
	roc, err := Normalize("1150101")
	require.NoError(t, err)
	greg, err := Normalize("20260101")
	require.NoError(t, err)
	assert.Equal(t, greg, roc)
}

func TestSplitPeriod(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "fullwidth wave dash",
			raw:       "114/12/12～114/12/28",
			wantStart: date(2025, time.December, 12),
			wantEnd:   date(2025, time.December, 28),
		},
		{
			name:      "ascii tilde",
			raw:       "1141212~1141228",
			wantStart: date(2025, time.December, 12),
			wantEnd:   date(2025, time.December, 28),
		},
		{
			name:      "hyphen between compact ROC dates",
			raw:       "114/12/12-114/12/28",
			wantStart: date(2025, time.December, 12),
			wantEnd:   date(2025, time.December, 28),
		},
		{
			name:      "surrounding whitespace",
			raw:       " 114/12/12 ～ 114/12/28 ",
			wantStart: date(2025, time.December, 12),
			wantEnd:   date(2025, time.December, 28),
		},
		{
			name:      "gregorian range",
			raw:       "20251212~20260109",
			wantStart: date(2025, time.December, 12),
			wantEnd:   date(2026, time.January, 9),
		},
		{
			name:    "no separator",
			raw:     "114/12/12",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "missing end",
			raw:     "114/12/12~",
			wantErr: true,
		},
		{
			name:    "garbage halves",
			raw:     "abc~def",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := SplitPeriod(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSplitPeriodWaveDashBeatsHyphen(t *testing.T) {
	// When both a wave dash and hyphens are present, the hyphens belong to
	// the sub-dates and the wave dash is the range separator.
	start, end, err := SplitPeriod("2025-12-12～2025-12-28")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.December, 12), start)
	assert.Equal(t, date(2025, time.December, 28), end)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.December, 29, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, a.AddDate(0, 0, 1)))
}

func TestMidnight(t *testing.T) {
	got := Midnight(time.Date(2025, time.December, 29, 13, 45, 7, 0, time.UTC))
	assert.Equal(t, date(2025, time.December, 29), got)
}
