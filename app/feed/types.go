package feed

import "time"

// Source tags where an item came from. Stored values must stay stable
// because the cache round-trips them as text.
type Source string

const (
	SourceAtom   Source = "atom"
	SourceRssHub Source = "rsshub"
	SourceCustom Source = "custom"
)

// SourceFromValue maps a stored source value back to a Source,
// defaulting to atom for unknown values.
func SourceFromValue(value string) Source {
	switch value {
	case string(SourceRssHub):
		return SourceRssHub
	case string(SourceCustom):
		return SourceCustom
	default:
		return SourceAtom
	}
}

// Item is one normalized feed entry. Created once per sync pass;
// Summary and Summarized are the only fields mutated afterwards,
// and only by the summarization scheduler.
type Item struct {
	ID          string
	Title       string
	Summary     string
	FullContent string
	Summarized  bool
	Source      Source
	PublishedAt string
	PublishedTS int64
	Link        string
	Author      string
	AvatarURL   string
	Tags        []string
}

// displayZone is the fixed offset used for rendered dates. Display dates
// are always re-derived from the canonical timestamp, never from the
// feed-supplied string.
var displayZone = time.FixedZone("UTC+8", 8*60*60)

func FormatDateUTC8(ts int64) string {
	return time.Unix(ts, 0).In(displayZone).Format("2006-01-02")
}
