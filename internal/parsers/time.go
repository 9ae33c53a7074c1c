package parsers

import (
	"strings"
	"time"
)

// ParseTimestamp normalizes an upstream reset timestamp into a
// timezone-aware instant. Accepts RFC 3339 with a trailing Z, an explicit
// offset, or no zone at all (treated as UTC). Unparseable input yields nil;
// a bad timestamp is never fatal.
func ParseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// ParseUnixSeconds converts an epoch-seconds number into an instant.
// Rejects implausibly small values so field confusion (e.g. a duration in
// a timestamp slot) degrades to absent.
func ParseUnixSeconds(v float64) *time.Time {
	if v < 1_000_000_000 {
		return nil
	}
	t := time.Unix(int64(v), 0).UTC()
	return &t
}
