// Package parsers holds tolerant helpers for the heterogeneous JSON the
// upstream APIs return: the same response may spell a field in camelCase or
// snake_case, report quota as an absolute pair or a bare percentage, and
// format timestamps with or without a trailing Z. Everything here degrades
// to "absent" instead of failing.
package parsers

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// LookupNumber tries each gjson path in order and returns the first numeric
// hit. Numbers encoded as strings count as numeric; anything else is
// skipped.
func LookupNumber(data []byte, paths ...string) *float64 {
	for _, path := range paths {
		v := gjson.GetBytes(data, path)
		switch v.Type {
		case gjson.Number:
			f := v.Float()
			return &f
		case gjson.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// LookupInt is LookupNumber truncated to int64.
func LookupInt(data []byte, paths ...string) *int64 {
	if f := LookupNumber(data, paths...); f != nil {
		n := int64(*f)
		return &n
	}
	return nil
}

// LookupString tries each path in order and returns the first non-empty
// string hit.
func LookupString(data []byte, paths ...string) string {
	for _, path := range paths {
		if v := gjson.GetBytes(data, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// LookupTime resolves the first path that parses as a timestamp.
func LookupTime(data []byte, paths ...string) *time.Time {
	for _, path := range paths {
		v := gjson.GetBytes(data, path)
		switch v.Type {
		case gjson.String:
			if t := ParseTimestamp(v.String()); t != nil {
				return t
			}
		case gjson.Number:
			if t := ParseUnixSeconds(v.Float()); t != nil {
				return t
			}
		}
	}
	return nil
}

// LookupRaw returns the raw JSON of the first path that exists, so nested
// objects can be re-queried without re-walking the parent document.
func LookupRaw(data []byte, paths ...string) []byte {
	for _, path := range paths {
		if v := gjson.GetBytes(data, path); v.Exists() {
			return []byte(v.Raw)
		}
	}
	return nil
}

// QuotaPair resolves a remaining/limit pair from a snapshot object,
// preferring the absolute remaining+entitlement fields and falling back to
// a lone percentage interpreted as remaining out of 100.
func QuotaPair(snapshot []byte) (remaining, limit *float64) {
	entitlement := LookupNumber(snapshot, "entitlement", "limit")
	rem := LookupNumber(snapshot, "quotaRemaining", "quota_remaining", "remaining")
	if entitlement != nil && rem != nil {
		return rem, entitlement
	}

	if pct := LookupNumber(snapshot, "percentRemaining", "percent_remaining"); pct != nil {
		hundred := 100.0
		return pct, &hundred
	}

	return nil, nil
}
