package timeline

import (
	"context"

	"github.com/scbizu/umbreon/app/feed"
	"github.com/scbizu/umbreon/app/summarizer"
)

type SyncerInterface interface {
	Run(ctx context.Context, url string) ([]feed.Item, error)
}

var _ SyncerInterface = (*feed.Syncer)(nil)

type SummarizerInterface interface {
	Run(ctx context.Context, items []feed.Item, creds summarizer.Credentials, progress func(done, total int)) []feed.Item
}

var _ SummarizerInterface = (*summarizer.Scheduler)(nil)

// ModelLister lists the model ids a summarization endpoint advertises.
// Implemented by ai.Client.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ModelListerFactory builds a ModelLister from credentials.
type ModelListerFactory func(endpoint, apiKey string) (ModelLister, error)
