package disposal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispocli/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rawRecord(source domain.Source, id string, end time.Time) domain.RawDisposalRecord {
	return domain.RawDisposalRecord{
		SecurityID:   id,
		SecurityName: "name-" + id,
		Source:       source,
		PeriodStart:  end.AddDate(0, 0, -10),
		PeriodEnd:    end,
	}
}

func TestReconcileKeepsLatestPeriodEnd(t *testing.T) {
	raw := []domain.RawDisposalRecord{
		rawRecord(domain.SourceTWSE, "2330", date(2025, time.December, 28)),
		rawRecord(domain.SourceTWSE, "2330", date(2026, time.January, 12)),
	}

	out := Reconcile(raw)
	require.Len(t, out, 1)
	assert.Equal(t, date(2026, time.January, 12), out[0].PeriodEnd)
}

func TestReconcileLatestFirstStillWins(t *testing.T) {
	raw := []domain.RawDisposalRecord{
		rawRecord(domain.SourceTWSE, "2330", date(2026, time.January, 12)),
		rawRecord(domain.SourceTWSE, "2330", date(2025, time.December, 28)),
	}

	out := Reconcile(raw)
	require.Len(t, out, 1)
	assert.Equal(t, date(2026, time.January, 12), out[0].PeriodEnd)
}

func TestReconcileTieKeepsFirstEncountered(t *testing.T) {
	first := rawRecord(domain.SourceTPEx, "5475", date(2025, time.December, 26))
	first.SecurityName = "first"
	second := rawRecord(domain.SourceTPEx, "5475", date(2025, time.December, 26))
	second.SecurityName = "second"

	out := Reconcile([]domain.RawDisposalRecord{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].SecurityName)
}

func TestReconcileDropsUnresolvedPeriodEnd(t *testing.T) {
	noEnd := domain.RawDisposalRecord{
		SecurityID: "4991",
		Source:     domain.SourceTWSE,
		RawRange:   "garbled",
	}
	ok := rawRecord(domain.SourceTWSE, "2330", date(2026, time.January, 12))

	out := Reconcile([]domain.RawDisposalRecord{noEnd, ok})
	require.Len(t, out, 1)
	assert.Equal(t, "2330", out[0].SecurityID)
}

func TestReconcileSameIDDifferentSourcesStaySeparate(t *testing.T) {
	raw := []domain.RawDisposalRecord{
		rawRecord(domain.SourceTWSE, "5475", date(2025, time.December, 26)),
		rawRecord(domain.SourceTPEx, "5475", date(2026, time.January, 12)),
	}

	out := Reconcile(raw)
	assert.Len(t, out, 2)
}

func TestReconcileIdempotent(t *testing.T) {
	raw := []domain.RawDisposalRecord{
		rawRecord(domain.SourceTWSE, "2330", date(2026, time.January, 12)),
		rawRecord(domain.SourceTPEx, "5475", date(2025, time.December, 26)),
	}

	once := Reconcile(raw)

	again := make([]domain.RawDisposalRecord, len(once))
	for i, r := range once {
		again[i] = domain.RawDisposalRecord{
			SecurityID:   r.SecurityID,
			SecurityName: r.SecurityName,
			Source:       r.Source,
			AnnounceDate: r.AnnounceDate,
			PeriodStart:  r.PeriodStart,
			PeriodEnd:    r.PeriodEnd,
			RawRange:     r.RawRange,
		}
	}
	assert.Equal(t, once, Reconcile(again))
}

func TestMoreRecent(t *testing.T) {
	older := rawRecord(domain.SourceTWSE, "2330", date(2025, time.December, 28))
	newer := rawRecord(domain.SourceTWSE, "2330", date(2026, time.January, 12))

	assert.True(t, MoreRecent(newer, older))
	assert.False(t, MoreRecent(older, newer))
	assert.False(t, MoreRecent(older, older), "ties must not replace the incumbent")
}
