package feed

import (
	"strings"
	"testing"
)

const atomDoc = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2024-01-01T00:00:00Z</updated>
  <id>urn:uuid:feed-1</id>
  <entry>
    <title>Entry One</title>
    <link href="https://example.com/one"/>
    <id>urn:uuid:entry-1</id>
    <published>2024-01-01T00:00:00Z</published>
    <updated>2024-01-01T00:00:00Z</updated>
    <content type="html">First entry</content>
  </entry>
  <entry>
    <title>Entry Two</title>
    <link href="https://example.com/two"/>
    <id>urn:uuid:entry-2</id>
    <published>2024-01-02T00:00:00Z</published>
    <updated>2024-01-02T00:00:00Z</updated>
    <content type="html">Second entry</content>
  </entry>
</feed>`

func TestParseValidFeed(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Run([]byte(atomDoc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if parsed.FeedType != "atom" {
		t.Errorf("Expected feed type 'atom', got: %s", parsed.FeedType)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Entry One" {
		t.Errorf("Expected title 'Entry One', got: %s", parsed.Items[0].Title)
	}
}

func TestParseFeedWithBOM(t *testing.T) {
	parser := NewParser()

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(atomDoc)...)

	parsed, err := parser.Run(withBOM)
	if err != nil {
		t.Fatalf("Expected BOM-prefixed feed to parse, got: %v", err)
	}

	plain, err := parser.Run([]byte(atomDoc))
	if err != nil {
		t.Fatalf("Expected BOM-free feed to parse, got: %v", err)
	}

	if len(parsed.Items) != len(plain.Items) {
		t.Fatalf("Expected %d items, got: %d", len(plain.Items), len(parsed.Items))
	}
	for i := range parsed.Items {
		if parsed.Items[i].Title != plain.Items[i].Title {
			t.Errorf("Item %d: expected title %q, got %q", i, plain.Items[i].Title, parsed.Items[i].Title)
		}
	}
}

func TestParseFeedWithLeadingGarbage(t *testing.T) {
	parser := NewParser()

	dirty := "server said:\n\n" + atomDoc

	parsed, err := parser.Run([]byte(dirty))
	if err != nil {
		t.Fatalf("Expected feed with preamble to parse, got: %v", err)
	}
	if len(parsed.Items) != 2 {
		t.Errorf("Expected 2 items, got: %d", len(parsed.Items))
	}
}

func TestParseFeedNoXMLContent(t *testing.T) {
	parser := NewParser()

	_, err := parser.Run([]byte("plain text, not a feed"))
	if err == nil {
		t.Fatal("Expected an error for non-XML input")
	}
	if !strings.Contains(err.Error(), "no xml content") {
		t.Errorf("Expected 'no xml content' error, got: %v", err)
	}
}

func TestParseFeedSurfacesUnderlyingError(t *testing.T) {
	parser := NewParser()

	_, err := parser.Run([]byte("<not-a-feed></not-a-feed>"))
	if err == nil {
		t.Fatal("Expected an error for unrecognized XML")
	}
	if !strings.Contains(err.Error(), "unable to parse feed") {
		t.Errorf("Expected wrapped parse error, got: %v", err)
	}
}

func TestRewriteVersionDecl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"double quoted",
			`<?xml version="1.0"?><rss version="1.0"></rss>`,
			`<?xml version="2.0"?><rss version="1.0"></rss>`,
		},
		{
			"single quoted",
			`<?xml version='1.0'?>`,
			`<?xml version='2.0'?>`,
		},
		{
			"no declaration untouched",
			`<rss version="2.0"></rss>`,
			`<rss version="2.0"></rss>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(rewriteVersionDecl([]byte(tt.input)))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
