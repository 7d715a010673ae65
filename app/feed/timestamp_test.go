package feed

import (
	"testing"
)

func TestParseTimestampAtom(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
		ok    bool
	}{
		{"RFC3339 UTC", "2024-01-01T00:00:00Z", 1704067200, true},
		{"RFC3339 with offset", "2024-01-01T08:00:00+08:00", 1704067200, true},
		{"datetime with zone name", "2024-01-01 00:00:00 UTC", 1704067200, true},
		{"datetime with GMT suffix", "2024-01-01 00:00:00 GMT", 1704067200, true},
		{"naive datetime as UTC", "2024-01-01 00:00:00", 1704067200, true},
		// An unresolvable zone abbreviation must fail rather than parse
		// as a fabricated zero-offset zone hours off the real time.
		{"unknown zone name", "2024-01-01 00:00:00 XST", 0, false},
		{"garbage", "not a date", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestampAtom(tt.value)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%t for %q, got %t", tt.ok, tt.value, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %d for %q, got %d", tt.want, tt.value, got)
			}
		})
	}
}

func TestParseTimestampRSS(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
		ok    bool
	}{
		{"RFC2822 numeric offset", "Mon, 01 Jan 2024 00:00:00 +0000", 1704067200, true},
		{"RFC2822 positive offset", "Mon, 01 Jan 2024 08:00:00 +0800", 1704067200, true},
		// RFC 2822 day is 1*2DIGIT: an unpadded day is a valid date,
		// not a feed bug.
		{"RFC2822 single-digit day", "Mon, 1 Jan 2024 00:00:00 +0000", 1704067200, true},
		{"RFC2822 single-digit day with zone", "Mon, 1 Jan 2024 00:00:00 GMT", 1704067200, true},
		{"bare date", "2024-01-01", 1704067200, true},
		{"datetime with UTC suffix", "2024-01-01 00:00:00 UTC", 1704067200, true},
		{"weekday with zone name", "Mon, 01 Jan 2024 00:00:00 GMT", 1704067200, true},
		{"weekday without seconds", "Mon, 01 Jan 2024 00:00 GMT", 1704067200, true},
		{"weekday single-digit day no seconds", "Mon, 1 Jan 2024 00:00 UTC", 1704067200, true},
		{"unknown zone name", "Mon, 01 Jan 2024 00:00:00 XST", 0, false},
		{"garbage", "yesterday", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestampRSS(tt.value)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%t for %q, got %t", tt.ok, tt.value, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %d for %q, got %d", tt.want, tt.value, got)
			}
		})
	}
}

func TestParseTimestampForFeed(t *testing.T) {
	// The RSS-only bare-date pattern separates the two families.
	if _, ok := ParseTimestampForFeed("atom", "2024-01-01"); ok {
		t.Error("Expected atom family to reject a bare date")
	}
	if ts, ok := ParseTimestampForFeed("rss", "2024-01-01"); !ok || ts != 1704067200 {
		t.Errorf("Expected rss family to accept a bare date, got ok=%t ts=%d", ok, ts)
	}

	// Unknown feed types fall back to the atom family.
	if ts, ok := ParseTimestampForFeed("json", "2024-01-01T00:00:00Z"); !ok || ts != 1704067200 {
		t.Errorf("Expected unknown feed type to use atom parsing, got ok=%t ts=%d", ok, ts)
	}
}

func TestFormatDateUTC8(t *testing.T) {
	// Midnight UTC renders as the same calendar day at UTC+8.
	if got := FormatDateUTC8(1704067200); got != "2024-01-01" {
		t.Errorf("Expected 2024-01-01, got %s", got)
	}
	// Late-evening UTC rolls over to the next day at UTC+8.
	if got := FormatDateUTC8(1704052800); got != "2024-01-01" { // 2023-12-31T20:00:00Z
		t.Errorf("Expected 2024-01-01 for 20:00 UTC the day before, got %s", got)
	}
}
