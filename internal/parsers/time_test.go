package parsers

import (
	"testing"
	"time"
)

func TestParseTimestamp_ZAndExplicitOffsetAgree(t *testing.T) {
	withZ := ParseTimestamp("2025-01-01T00:00:00Z")
	withOffset := ParseTimestamp("2025-01-01T00:00:00+00:00")

	if withZ == nil || withOffset == nil {
		t.Fatalf("ParseTimestamp = (%v, %v), want both parsed", withZ, withOffset)
	}
	if !withZ.Equal(*withOffset) {
		t.Fatalf("instants differ: %v vs %v", withZ, withOffset)
	}
}

func TestParseTimestamp_NoZoneTreatedAsUTC(t *testing.T) {
	got := ParseTimestamp("2025-01-01T12:30:00")
	if got == nil {
		t.Fatal("ParseTimestamp = nil, want value")
	}
	want := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseTimestamp = %v, want %v", got, want)
	}
}

func TestParseTimestamp_UnparseableDropped(t *testing.T) {
	for _, raw := range []string{"", "soon", "not-a-date", "13:37"} {
		if got := ParseTimestamp(raw); got != nil {
			t.Fatalf("ParseTimestamp(%q) = %v, want nil", raw, got)
		}
	}
}

func TestParseUnixSeconds_RejectsSmallValues(t *testing.T) {
	if got := ParseUnixSeconds(300); got != nil {
		t.Fatalf("ParseUnixSeconds(300) = %v, want nil", got)
	}
}
