package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser wraps gofeed with an ordered chain of recovery strategies for
// malformed feeds. Each strategy is strictly more invasive than the one
// before it, so the chain must be tried in order: rewriting a feed that
// would have parsed as-is risks corrupting it.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

type recovery struct {
	name string
	data func() []byte
}

// Run parses feed bytes, falling back through recovery strategies until
// one succeeds. The final failure surfaces the last underlying parser
// error; input without any '<' byte fails with a distinct message.
func (p *Parser) Run(data []byte) (*gofeed.Feed, error) {
	trimmed := bytes.TrimPrefix(data, utf8BOM)
	xmlStart := bytes.IndexByte(trimmed, '<')

	strategies := []recovery{
		{"as-is", func() []byte { return data }},
		{"bom-stripped", func() []byte { return trimmed }},
	}
	if xmlStart >= 0 {
		body := trimmed[xmlStart:]
		strategies = append(strategies,
			recovery{"xml-offset", func() []byte { return body }},
			recovery{"version-rewrite", func() []byte { return rewriteVersionDecl(body) }},
		)
	}

	var lastErr error
	for _, strategy := range strategies {
		parsed, err := p.gofeedParser.Parse(bytes.NewReader(strategy.data()))
		if err == nil {
			if strategy.name != "as-is" {
				slog.Debug("Feed recovered by fallback strategy", "strategy", strategy.name)
			}
			return parsed, nil
		}
		lastErr = err
	}

	if xmlStart < 0 {
		return nil, fmt.Errorf("unable to parse feed: no xml content")
	}
	return nil, fmt.Errorf("unable to parse feed: %w", lastErr)
}

// rewriteVersionDecl patches the first version="1.0" declaration (either
// quote style) to version="2.0". This targets one known class of feeds
// with a bogus version declaration; it is not general XML repair.
func rewriteVersionDecl(data []byte) []byte {
	text := strings.Replace(string(data), `version="1.0"`, `version="2.0"`, 1)
	text = strings.Replace(text, `version='1.0'`, `version='2.0'`, 1)
	return []byte(text)
}
