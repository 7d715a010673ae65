package api

import (
	"github.com/scbizu/umbreon/app/database"
	"github.com/scbizu/umbreon/app/feed"
	"github.com/scbizu/umbreon/app/timeline"
)

type Handler struct {
	service      *timeline.Service
	settingsRepo database.SettingsRepository
}

type ItemResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Summarized  bool     `json:"summarized"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	PublishedTS int64    `json:"published_ts"`
	Link        string   `json:"link"`
	Author      string   `json:"author"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Tags        []string `json:"tags"`
}

type TimelineResponse struct {
	Items  []ItemResponse `json:"items"`
	Status string         `json:"status,omitempty"`
	Busy   bool           `json:"busy"`
}

type SettingsRequest struct {
	FeedServerURL *string `json:"feed_server_url"`
	LLMEndpoint   *string `json:"llm_endpoint"`
	LLMAPIKey     *string `json:"llm_api_key"`
	LLMModel      *string `json:"llm_model"`
	Theme         *string `json:"theme"`
}

func itemResponse(item feed.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Summary:     item.Summary,
		Summarized:  item.Summarized,
		Source:      string(item.Source),
		PublishedAt: item.PublishedAt,
		PublishedTS: item.PublishedTS,
		Link:        item.Link,
		Author:      item.Author,
		AvatarURL:   item.AvatarURL,
		Tags:        item.Tags,
	}
}
