// Package ai talks to an OpenAI-compatible chat completion endpoint.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const summarizePrompt = "You are a feed reader assistant. Summarize the " +
	"following article in two or three short sentences, in the article's " +
	"own language. Reply with the summary only.\n\nTitle: %s\n\n%s"

type Client struct {
	client openai.Client
	model  string
}

// NewClient builds a client against the given endpoint. An empty endpoint
// uses the default OpenAI base URL; a trailing slash is trimmed so path
// joining stays predictable across providers.
func NewClient(endpoint, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("API key is empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  strings.TrimSpace(model),
	}, nil
}

// Summarize requests a model-generated summary for one article. Best
// effort: callers degrade to a local excerpt on any error.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	if c.model == "" {
		return "", fmt.Errorf("model is empty")
	}

	prompt := fmt.Sprintf(summarizePrompt, title, content)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		slog.Warn("Chat request failed", "model", c.model, "error", err)
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	text := response.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model returned empty response")
	}

	return text, nil
}

// ListModels returns the sorted, deduplicated model ids the endpoint
// advertises.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch models failed: %w", err)
	}

	models := make([]string, 0, len(page.Data))
	for _, model := range page.Data {
		models = append(models, model.ID)
	}
	sort.Strings(models)

	return slices.Compact(models), nil
}
