package core

import (
	"testing"
	"time"
)

func TestParseLegacyDate(t *testing.T) {
	cases := []struct {
		in    string
		want  Date
		empty bool
	}{
		{"05/12/2024", NewDate(2024, 12, 5), false},
		{" 05/06/2026 ", NewDate(2026, 6, 5), false},
		{"", Date{}, true},
		{"2024-12-05", Date{}, true},
		{"05/12", Date{}, true},
		{"aa/bb/cccc", Date{}, true},
		{"0/12/2024", Date{}, true},
		{"05/0/2024", Date{}, true},
	}
	for _, tc := range cases {
		got := ParseLegacyDate(tc.in)
		if tc.empty {
			if !got.IsEmpty() {
				t.Fatalf("ParseLegacyDate(%q) = %v, want absent", tc.in, got)
			}
			continue
		}
		if !got.Equal(tc.want.Time) {
			t.Fatalf("ParseLegacyDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	start, end := ParseDateRange("05/12/2024 - 05/06/2026")
	if !start.Equal(time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}
}

func TestParseDateRangeEmpty(t *testing.T) {
	start, end := ParseDateRange("")
	if !start.IsEmpty() || !end.IsEmpty() {
		t.Fatalf("empty range should yield two absent dates, got %v / %v", start, end)
	}
}

func TestParseDateRangeHalves(t *testing.T) {
	// Each half parses independently: a malformed side degrades to absent
	// without touching the other one.
	start, end := ParseDateRange("05/11/2024 - garbage")
	if start.IsEmpty() {
		t.Fatal("start should be present")
	}
	if !end.IsEmpty() {
		t.Fatalf("end should be absent, got %v", end)
	}
}

func TestParseISODate(t *testing.T) {
	got := ParseISODate("2025-04-05")
	want := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseISODate = %v, want %v", got, want)
	}
	if loc := got.Location(); loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}
	if !ParseISODate("").IsEmpty() {
		t.Fatal("empty input should be absent")
	}
	if !ParseISODate("05/04/2025").IsEmpty() {
		t.Fatal("legacy format is not valid ISO input")
	}
}

func TestDateISORoundTrip(t *testing.T) {
	d := NewDate(2026, 6, 5)
	if got := d.ISO(); got != "2026-06-05" {
		t.Fatalf("ISO() = %q", got)
	}
	if got := (Date{}).ISO(); got != "" {
		t.Fatalf("absent date ISO() = %q, want empty", got)
	}
	if !ParseISODate(d.ISO()).Equal(d.Time) {
		t.Fatal("ISO round trip mismatch")
	}
}
