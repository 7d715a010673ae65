package feed

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips feed-supplied markup down to safe subsets. Feed cards
// stay text-only: no media element is on any allow-list, so untrusted
// feeds cannot inject images, video, or iframes.
type Sanitizer struct {
	card    *bluemonday.Policy
	summary *bluemonday.Policy
	strict  *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	card := bluemonday.NewPolicy()
	card.AllowElements("pre", "code", "p", "br",
		"b", "strong", "i", "em", "u", "s",
		"ul", "ol", "li", "blockquote", "span",
		"h1", "h2", "h3", "h4", "h5", "h6", "a")
	card.AllowAttrs("href").OnElements("a")
	card.AllowStandardURLs()

	summary := bluemonday.NewPolicy()
	summary.AllowElements("p", "br")

	return &Sanitizer{
		card:    card,
		summary: summary,
		strict:  bluemonday.StrictPolicy(),
	}
}

// CleanCard sanitizes an entry body for display in a feed card.
func (s *Sanitizer) CleanCard(input string) string {
	return s.card.Sanitize(input)
}

// CleanSummary sanitizes model output down to paragraph markup only.
func (s *Sanitizer) CleanSummary(input string) string {
	return s.summary.Sanitize(input)
}

// PlainText strips all markup, unescapes entities, and collapses
// whitespace runs into single spaces.
func (s *Sanitizer) PlainText(input string) string {
	text := html.UnescapeString(s.strict.Sanitize(input))
	return strings.Join(strings.Fields(text), " ")
}
