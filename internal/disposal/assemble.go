package disposal

import (
	"sort"
	"time"

	"dispocli/internal/dates"
	"dispocli/pkg/contracts/domain"
)

// Assemble orders classified records into the final report shape: sources
// in canonical order, buckets in canonical order within each source, and
// entries sorted by security id. Every source and bucket is present even
// when empty, so renderers can always show a "none" line instead of
// dropping a section.
func Assemble(classified domain.ClassifiedRecords, date time.Time) domain.OrderedReport {
	report := domain.OrderedReport{
		Date:     dates.Midnight(date),
		Sections: make([]domain.SourceSection, 0, len(domain.AllSources)),
	}

	for _, source := range domain.AllSources {
		section := domain.SourceSection{
			Source:  source,
			Buckets: make([]domain.BucketGroup, 0, len(domain.BucketOrder)),
		}
		for _, bucket := range domain.BucketOrder {
			members := classified[source][bucket]
			entries := make([]domain.ReportEntry, 0, len(members))
			for _, rec := range members {
				entries = append(entries, domain.ReportEntry{
					SecurityID:   rec.SecurityID,
					SecurityName: rec.SecurityName,
					RawRange:     rec.RawRange,
				})
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].SecurityID < entries[j].SecurityID
			})
			section.Buckets = append(section.Buckets, domain.BucketGroup{
				Bucket:  bucket,
				Entries: entries,
			})
		}
		report.Sections = append(report.Sections, section)
	}
	return report
}
