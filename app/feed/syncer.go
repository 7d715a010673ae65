package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Syncer runs one full feed sync: fetch, parse with fallback, normalize
// every entry, sort. At-most-one-result semantics: either a complete
// sorted item list or an error, never a partial set.
type Syncer struct {
	fetcher    *Fetcher
	parser     *Parser
	normalizer *Normalizer
}

func NewSyncer(fetcher *Fetcher, parser *Parser, normalizer *Normalizer) *Syncer {
	return &Syncer{
		fetcher:    fetcher,
		parser:     parser,
		normalizer: normalizer,
	}
}

func (s *Syncer) Run(ctx context.Context, url string) ([]Item, error) {
	data, err := s.fetcher.Run(ctx, url)
	if err != nil {
		if errors.Is(err, errReadBody) {
			return nil, fmt.Errorf("failed to read feed server: %w", err)
		}
		return nil, fmt.Errorf("failed to load feed server: %w", err)
	}

	parsed, err := s.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed server: %w", err)
	}

	items, err := s.normalizer.Run(parsed)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no feed entries found")
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedTS > items[j].PublishedTS
	})

	slog.Info("Feed synced", "url", url, "items", len(items), "type", parsed.FeedType)

	return items, nil
}
