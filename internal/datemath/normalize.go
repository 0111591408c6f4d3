package datemath

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// naiveLayouts are tried before the permissive parser so that timestamps
// without an offset are read as UTC instead of local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToUTC normalises the loosely typed timestamp values found in stored job
// documents. Supported inputs are time.Time, *time.Time and strings; nil,
// zero times, unparseable strings and years outside [MinYear, MaxYear]
// report false.
func ToUTC(v any) (time.Time, bool) {
	t, ok := toUTC(v)
	if !ok || !Plausible(t) {
		return time.Time{}, false
	}
	return t, true
}

func toUTC(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return toUTC(*t)
	case string:
		return parseTimestamp(t)
	default:
		return time.Time{}, false
	}
}

// ParseTimestampOr parses s like ToUTC and falls back when s is empty or
// malformed.
func ParseTimestampOr(s string, fallback time.Time) time.Time {
	if t, ok := parseTimestamp(s); ok && Plausible(t) {
		return t
	}
	return fallback
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
