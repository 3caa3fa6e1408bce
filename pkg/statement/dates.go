package statement

import (
	"fmt"
	"strings"
	"time"
)

// Day-first layouts accepted by statement sources. ISO comes last as a
// fallback for spreadsheet tools that re-render dates
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// ParseDate parses a statement date string with the day-first convention
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if dt, err := time.Parse(layout, value); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date: %q", value)
}
