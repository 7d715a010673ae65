package summarizer

import "context"

// ChatClient is the summarization collaborator. Implemented by ai.Client.
type ChatClient interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// ClientFactory builds a ChatClient from credentials. Injected so the
// scheduler can be exercised without network access.
type ClientFactory func(endpoint, apiKey, model string) (ChatClient, error)
