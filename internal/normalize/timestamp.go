package normalize

import (
	"strings"
	"time"
)

// timeStrategy is one family of layouts tried against a timestamp.
type timeStrategy struct {
	name    string
	layouts []string
}

// timeStrategies are tried in order; the first one that parses wins.
var timeStrategies = []timeStrategy{
	{
		name: "iso",
		layouts: []string{
			time.RFC3339Nano,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04",
			"2006-01-02 15:04",
			"2006-01-02",
		},
	},
	{
		name: "day-first",
		layouts: []string{
			"02.01.2006 15:04:05",
			"02.01.2006 15:04",
			"02.01.2006",
			"02/01/2006 15:04:05",
			"02/01/2006 15:04",
			"02/01/2006",
			"02-01-2006 15:04:05",
			"02-01-2006 15:04",
			"02-01-2006",
			"02-01-06",
		},
	},
}

// ParseTimestamp parses a feed timestamp. Values without a zone are read in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, strategy := range timeStrategies {
		for _, layout := range strategy.layouts {
			if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func parseTimestampValue(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return ParseTimestamp(t, loc)
	default:
		return time.Time{}, false
	}
}
