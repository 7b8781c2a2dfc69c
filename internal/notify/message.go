package notify

import (
	"fmt"
	"strings"

	"dispocli/pkg/contracts/domain"
)

// RenderMessage formats an ordered report as the plain-text notification
// body. Sections follow the report's canonical ordering; empty buckets
// render as "none" so every run shows the same outline.
func RenderMessage(report domain.OrderedReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Disposal report %s\n", report.Date.Format("2006-01-02"))

	for _, section := range report.Sections {
		fmt.Fprintf(&b, "\n[%s]\n", section.Source.DisplayName())
		for _, group := range section.Buckets {
			fmt.Fprintf(&b, "%s:\n", group.Bucket.DisplayName())
			if len(group.Entries) == 0 {
				b.WriteString("  none\n")
				continue
			}
			for _, entry := range group.Entries {
				fmt.Fprintf(&b, "  %s %s %s\n", entry.SecurityID, entry.SecurityName, entry.RawRange)
			}
		}
	}
	return b.String()
}
