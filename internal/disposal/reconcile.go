package disposal

import (
	"dispocli/pkg/contracts/domain"
)

type recordKey struct {
	source domain.Source
	id     string
}

// MoreRecent is the reconciliation comparator: it reports whether candidate
// should replace incumbent for the same (source, security id). A later
// period end wins; on equal period ends the incumbent stays, so given a
// stable input ordering the outcome is deterministic.
func MoreRecent(candidate, incumbent domain.RawDisposalRecord) bool {
	return candidate.PeriodEnd.After(incumbent.PeriodEnd)
}

// Reconcile folds raw feed rows into one canonical record per
// (source, security id). Rows without a resolved period end carry no clock
// anchor and are dropped. Output preserves first-seen order per key, which
// keeps the fold idempotent: reconciling an already-reconciled set returns
// it unchanged.
func Reconcile(raw []domain.RawDisposalRecord) []domain.DisposalRecord {
	index := make(map[recordKey]int, len(raw))
	kept := make([]domain.RawDisposalRecord, 0, len(raw))

	for _, r := range raw {
		if !r.HasPeriodEnd() {
			continue
		}
		key := recordKey{source: r.Source, id: r.SecurityID}
		if i, seen := index[key]; seen {
			if MoreRecent(r, kept[i]) {
				kept[i] = r
			}
			continue
		}
		index[key] = len(kept)
		kept = append(kept, r)
	}

	out := make([]domain.DisposalRecord, len(kept))
	for i, r := range kept {
		out[i] = domain.DisposalRecord{
			SecurityID:   r.SecurityID,
			SecurityName: r.SecurityName,
			Source:       r.Source,
			AnnounceDate: r.AnnounceDate,
			PeriodStart:  r.PeriodStart,
			PeriodEnd:    r.PeriodEnd,
			RawRange:     r.RawRange,
		}
	}
	return out
}
