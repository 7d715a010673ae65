package feed

import (
	"strings"
	"time"
)

// Feed dates arrive in a mix of standard and legacy formats. Each
// family below is an ordered chain: later patterns are strictly more
// permissive than earlier ones, so reordering would let a loose pattern
// misparse a stricter format.

const (
	layoutDateTimeZone   = "2006-01-02 15:04:05 MST"
	layoutDateTimeOffset = "2006-01-02 15:04:05 -0700"
	layoutDateTimeNaive  = "2006-01-02 15:04:05"
	layoutDateOnly       = "2006-01-02"

	// RFC 2822 allows a single-digit day, which the fixed-width
	// time.RFC1123 layouts reject; the unpadded "2" accepts both forms.
	layoutRFC2822      = "Mon, 2 Jan 2006 15:04:05 -0700"
	layoutRFC2822Zone  = "Mon, 2 Jan 2006 15:04:05 MST"
	layoutWeekdayNoSec = "Mon, 2 Jan 2006 15:04 MST"
)

// ParseTimestampAtom parses an Atom-family date string into epoch seconds.
func ParseTimestampAtom(value string) (int64, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix(), true
	}
	if ts, ok := parseZoneName(layoutDateTimeZone, value); ok {
		return ts, true
	}
	if ts, ok := parseStrippedZoneSuffix(value); ok {
		return ts, true
	}
	if t, err := time.ParseInLocation(layoutDateTimeNaive, value, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}

// ParseTimestampRSS parses an RSS-family date string into epoch seconds.
func ParseTimestampRSS(value string) (int64, bool) {
	if t, err := time.Parse(layoutRFC2822, value); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation(layoutDateOnly, value, time.UTC); err == nil {
		return t.Unix(), true
	}
	if ts, ok := parseStrippedZoneSuffix(value); ok {
		return ts, true
	}
	if ts, ok := parseZoneName(layoutRFC2822Zone, value); ok {
		return ts, true
	}
	if ts, ok := parseZoneName(layoutWeekdayNoSec, value); ok {
		return ts, true
	}
	return 0, false
}

// ParseTimestampForFeed dispatches on the declared feed type. Unknown
// types fall back to the Atom family as a best-effort default.
func ParseTimestampForFeed(feedType string, value string) (int64, bool) {
	switch feedType {
	case "rss":
		return ParseTimestampRSS(value)
	default:
		return ParseTimestampAtom(value)
	}
}

// parseZoneName parses layouts that carry a zone abbreviation. Go
// fabricates a zero-offset zone for abbreviations it cannot resolve,
// which would silently shift the timestamp; such matches are rejected
// so the value surfaces as a date error instead.
func parseZoneName(layout, value string) (int64, bool) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, false
	}
	if name, offset := t.Zone(); offset == 0 && name != "" && name != "UTC" && name != "GMT" {
		return 0, false
	}
	return t.Unix(), true
}

// parseStrippedZoneSuffix handles the "YYYY-MM-DD HH:MM:SS UTC" class of
// dates by replacing the literal zone name with a numeric offset.
func parseStrippedZoneSuffix(value string) (int64, bool) {
	for _, suffix := range []string{" UTC", " GMT"} {
		trimmed, ok := strings.CutSuffix(value, suffix)
		if !ok {
			continue
		}
		if t, err := time.Parse(layoutDateTimeOffset, trimmed+" +0000"); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}
