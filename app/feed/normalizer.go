package feed

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"
)

// defaultAuthor stands in when neither the entry nor the feed names one.
const defaultAuthor = "Feed Server"

// Normalizer maps parsed entries into the canonical Item model. A bad
// entry fails the whole pass: a systematic date-format issue should
// block the feed rather than silently shrink the timeline.
type Normalizer struct {
	sanitizer *Sanitizer
}

func NewNormalizer(sanitizer *Sanitizer) *Normalizer {
	return &Normalizer{sanitizer: sanitizer}
}

// Run normalizes every entry of a parsed feed, in document order.
// Synthetic ids use the ordinal position among items produced so far,
// which makes ids unique within one pass.
func (n *Normalizer) Run(parsed *gofeed.Feed) ([]Item, error) {
	source := SourceCustom
	if parsed.FeedType == "atom" {
		source = SourceAtom
	}

	feedTitle := cmp.Or(parsed.Title, defaultAuthor)

	// Feed-level image doubles as the avatar for every item in this fetch.
	var avatarURL string
	if parsed.Image != nil {
		avatarURL = parsed.Image.URL
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item, err := n.normalizeEntry(entry, parsed.FeedType, source, feedTitle, avatarURL, len(items))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (n *Normalizer) normalizeEntry(entry *gofeed.Item, feedType string, source Source,
	feedTitle, avatarURL string, ordinal int) (Item, error) {

	title := entry.Title
	summary := n.sanitizer.CleanCard(cmp.Or(entry.Content, entry.Description, title))

	dateValue := cmp.Or(entry.Published, entry.Updated)
	if dateValue == "" {
		return Item{}, fmt.Errorf("missing published/updated date in feed entry %s", entryRef(entry, title))
	}
	publishedTS, ok := ParseTimestampForFeed(feedType, dateValue)
	if !ok {
		return Item{}, fmt.Errorf("invalid date '%s' in feed entry %s", dateValue, entryRef(entry, title))
	}

	id := entry.GUID
	if id == "" {
		id = fmt.Sprintf("feed-%d", ordinal)
	}

	return Item{
		ID:          id,
		Title:       title,
		Summary:     summary,
		FullContent: summary,
		Summarized:  false,
		Source:      source,
		PublishedAt: FormatDateUTC8(publishedTS),
		PublishedTS: publishedTS,
		Link:        entry.Link,
		Author:      cmp.Or(entryAuthor(entry), feedTitle),
		AvatarURL:   avatarURL,
		Tags:        normalizeTags(entry.Categories),
	}, nil
}

// entryRef identifies an entry in error messages: its id, or its title
// when the id is empty.
func entryRef(entry *gofeed.Item, title string) string {
	return cmp.Or(entry.GUID, title)
}

func entryAuthor(entry *gofeed.Item) string {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	if entry.Author != nil {
		return entry.Author.Name
	}
	return ""
}

func normalizeTags(categories []string) []string {
	tags := make([]string, 0, len(categories))
	for _, category := range categories {
		if tag := strings.TrimSpace(category); tag != "" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return slices.Compact(tags)
}
