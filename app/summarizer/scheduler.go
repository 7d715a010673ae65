// Package summarizer enriches synced feed items with model-generated
// summaries in bounded batches.
package summarizer

import (
	"cmp"
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/scbizu/umbreon/app/feed"
)

const (
	// BatchSize is the sequencing unit across a large backlog.
	BatchSize = 20
	// GroupSize bounds peak in-flight requests: a group's members run
	// concurrently and are awaited together before the next group starts.
	GroupSize = 5

	excerptLimit = 140
)

// Credentials for the summarization endpoint. All three must be non-empty
// (after trimming) before any summarization is attempted.
type Credentials struct {
	Endpoint string
	APIKey   string
	Model    string
}

// Scheduler partitions unsummarized items into batches and groups and
// applies per-item degradation on failure. It never fails the caller:
// every item leaves a pass with a defined Summary/Summarized pair.
type Scheduler struct {
	sanitizer *feed.Sanitizer
	newClient ClientFactory
}

func NewScheduler(sanitizer *feed.Sanitizer, newClient ClientFactory) *Scheduler {
	return &Scheduler{
		sanitizer: sanitizer,
		newClient: newClient,
	}
}

// pending is one candidate item with its precomputed request input and
// local fallback excerpt.
type pending struct {
	index    int
	body     string
	fallback string
}

// outcome is the per-item result: an accepted model summary, or the
// degraded local fallback.
type outcome struct {
	summary  string
	accepted bool
}

// Run summarizes the unsummarized items in place and returns the slice,
// same length and order. Already-summarized items are skipped, which
// makes re-runs over a cached set no-ops.
func (s *Scheduler) Run(ctx context.Context, items []feed.Item, creds Credentials, progress func(done, total int)) []feed.Item {
	endpoint := strings.TrimSpace(creds.Endpoint)
	apiKey := strings.TrimSpace(creds.APIKey)
	model := strings.TrimSpace(creds.Model)
	if endpoint == "" || apiKey == "" || model == "" {
		return items
	}

	queue := s.collectPending(items)
	if len(queue) == 0 {
		return items
	}

	client, err := s.newClient(endpoint, apiKey, model)
	if err != nil {
		slog.Warn("Summarization client unavailable", "error", err)
		return items
	}

	total := len(items)
	done := 0

	for batchStart := 0; batchStart < len(queue); batchStart += BatchSize {
		batch := queue[batchStart:min(batchStart+BatchSize, len(queue))]

		for groupStart := 0; groupStart < len(batch); groupStart += GroupSize {
			group := batch[groupStart:min(groupStart+GroupSize, len(batch))]

			outcomes := make([]outcome, len(group))
			var wg sync.WaitGroup
			for i, p := range group {
				done++
				if progress != nil {
					progress(done, total)
				}

				item := items[p.index]
				content := cmp.Or(p.body, item.Summary)

				wg.Add(1)
				go func(i int, title, content, fallback string) {
					defer wg.Done()
					text, err := client.Summarize(ctx, title, content)
					outcomes[i] = s.resolve(text, err, fallback)
				}(i, item.Title, content, p.fallback)
			}
			wg.Wait()

			for i, p := range group {
				items[p.index].Summary = outcomes[i].summary
				items[p.index].Summarized = outcomes[i].accepted
			}
		}
	}

	return items
}

func (s *Scheduler) collectPending(items []feed.Item) []pending {
	var queue []pending
	for index, item := range items {
		if item.Summarized {
			continue
		}
		body := s.sanitizer.PlainText(item.FullContent)
		queue = append(queue, pending{
			index:    index,
			body:     body,
			fallback: excerpt(cmp.Or(body, item.Summary)),
		})
	}
	return queue
}

// resolve maps a request result onto an outcome. Output that sanitizes
// to nothing counts as a failure so the item is retried on the next
// sync instead of sticking with an empty summary.
func (s *Scheduler) resolve(text string, err error, fallback string) outcome {
	if err != nil {
		slog.Debug("Summarization degraded to fallback excerpt", "error", err)
		return outcome{summary: fallback}
	}

	cleaned := s.sanitizer.CleanSummary(text)
	if strings.TrimSpace(cleaned) == "" {
		return outcome{summary: fallback}
	}

	return outcome{summary: cleaned, accepted: true}
}

// excerpt truncates to a display-sized prefix, counting runes so
// multi-byte text is never cut mid-character.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "…"
}
