package marketcal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"dispocli/internal/dates"
)

// holidayFile is the on-disk shape of a holiday table:
//
//	holidays:
//	  - "2026-01-01"
//	  - "115/02/16"
type holidayFile struct {
	Holidays []string `yaml:"holidays"`
}

// LoadHolidays reads a YAML holiday table and returns a Calendar. Dates may
// use either calendar convention accepted by dates.Normalize; an entry that
// fails to parse fails the load, since a silently shrunken holiday set
// would shift every computed release date.
func LoadHolidays(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}

	var file holidayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse holiday file: %w", err)
	}

	holidays := make([]time.Time, 0, len(file.Holidays))
	for _, raw := range file.Holidays {
		d, err := dates.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday entry %q: %w", raw, err)
		}
		holidays = append(holidays, d)
	}
	return New(holidays), nil
}
