package disposal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispocli/pkg/contracts/domain"
)

func TestAssembleOrdering(t *testing.T) {
	classified := domain.ClassifiedRecords{
		domain.SourceTWSE: {
			domain.BucketStillRestricted: {
				{SecurityID: "9962", SecurityName: "b", Source: domain.SourceTWSE},
				{SecurityID: "1101", SecurityName: "a", Source: domain.SourceTWSE},
				{SecurityID: "2330", SecurityName: "c", Source: domain.SourceTWSE},
			},
		},
		domain.SourceTPEx: {
			domain.BucketReleasedToday: {
				{SecurityID: "5475", SecurityName: "d", Source: domain.SourceTPEx},
			},
		},
	}

	report := Assemble(classified, time.Date(2025, time.December, 29, 9, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC), report.Date)
	require.Len(t, report.Sections, 2)
	assert.Equal(t, domain.SourceTWSE, report.Sections[0].Source)
	assert.Equal(t, domain.SourceTPEx, report.Sections[1].Source)

	// Every bucket present in canonical order, even when empty.
	for _, section := range report.Sections {
		require.Len(t, section.Buckets, len(domain.BucketOrder))
		for i, group := range section.Buckets {
			assert.Equal(t, domain.BucketOrder[i], group.Bucket)
			assert.NotNil(t, group.Entries)
		}
	}

	twseRestricted := report.Sections[0].Buckets[3]
	require.Equal(t, domain.BucketStillRestricted, twseRestricted.Bucket)
	ids := make([]string, 0, len(twseRestricted.Entries))
	for _, e := range twseRestricted.Entries {
		ids = append(ids, e.SecurityID)
	}
	assert.Equal(t, []string{"1101", "2330", "9962"}, ids)

	tpexReleased := report.Sections[1].Buckets[0]
	require.Equal(t, domain.BucketReleasedToday, tpexReleased.Bucket)
	require.Len(t, tpexReleased.Entries, 1)
	assert.Equal(t, "5475", tpexReleased.Entries[0].SecurityID)
}

func TestAssembleEmptyClassification(t *testing.T) {
	report := Assemble(domain.ClassifiedRecords{}, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC))

	require.Len(t, report.Sections, len(domain.AllSources))
	for _, section := range report.Sections {
		require.Len(t, section.Buckets, len(domain.BucketOrder))
		for _, group := range section.Buckets {
			assert.Empty(t, group.Entries)
			assert.NotNil(t, group.Entries)
		}
	}
}
