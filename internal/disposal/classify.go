package disposal

import (
	"time"

	"dispocli/internal/dates"
	"dispocli/internal/marketcal"
	"dispocli/pkg/contracts/domain"
)

// Classify assigns each canonical record to at most one lifecycle bucket
// relative to today. It assumes Reconcile already ran, so every record has
// a resolved period end.
//
// The release date is the first trading day strictly after the period end:
// a restriction specified by calendar end date always resumes on the
// following session, skipping weekends and holidays. The effective start is
// the first trading day after the announcement when the announcement date
// resolved, otherwise the raw period start as the best available estimate;
// announcement-derived starts take precedence because the feeds' period
// start fields disagree across source variants while the announcement date
// is consistently populated.
//
// Bucket rules, first match wins:
//
//	release date == today               -> released today
//	release date == next session        -> releasing next trading day
//	effective start == today            -> entered today
//	effective start <= today <= end     -> still restricted
//
// A record whose effective start could not be resolved skips the last two
// rules rather than failing the run. Records matching no rule (lapsed long
// ago, or starting beyond today) are omitted.
func Classify(records []domain.DisposalRecord, today time.Time, cal *marketcal.Calendar) domain.ClassifiedRecords {
	today = dates.Midnight(today)
	// "Next session" is the next trading day strictly after today, whether
	// or not today itself trades.
	nextSession := cal.NextTradingDay(today)

	out := make(domain.ClassifiedRecords)
	for _, rec := range records {
		if bucket, ok := classifyOne(rec, today, nextSession, cal); ok {
			byBucket, exists := out[rec.Source]
			if !exists {
				byBucket = make(map[domain.Bucket][]domain.DisposalRecord)
				out[rec.Source] = byBucket
			}
			byBucket[bucket] = append(byBucket[bucket], rec)
		}
	}
	return out
}

func classifyOne(rec domain.DisposalRecord, today, nextSession time.Time, cal *marketcal.Calendar) (domain.Bucket, bool) {
	releaseDate := cal.NextTradingDay(rec.PeriodEnd)

	var effectiveStart time.Time
	if rec.HasAnnounceDate() {
		effectiveStart = cal.NextTradingDay(rec.AnnounceDate)
	} else {
		effectiveStart = rec.PeriodStart
	}

	switch {
	case dates.SameDay(releaseDate, today):
		return domain.BucketReleasedToday, true
	case dates.SameDay(releaseDate, nextSession):
		return domain.BucketReleasingNextTradingDay, true
	case effectiveStart.IsZero():
		return "", false
	case dates.SameDay(effectiveStart, today):
		return domain.BucketEnteredToday, true
	case !effectiveStart.After(today) && !today.After(dates.Midnight(rec.PeriodEnd)):
		return domain.BucketStillRestricted, true
	default:
		return "", false
	}
}
