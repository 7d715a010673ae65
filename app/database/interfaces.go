package database

import "github.com/scbizu/umbreon/app/feed"

type ItemRepository interface {
	// LoadAll returns the cached snapshot, newest first.
	LoadAll() ([]feed.Item, error)
	// ReplaceAll swaps the whole cache for the given items in a single
	// transaction. The cache always reflects exactly the last
	// successful sync, never a partial update.
	ReplaceAll(items []feed.Item) error
}

type SettingsRepository interface {
	LoadSettings() (*StoredSettings, error)

	SetFeedServerURL(url string) error
	SetLLMEndpoint(endpoint string) error
	SetLLMAPIKey(apiKey string) error
	SetLLMModel(model string) error
	SetLLMModels(models []string) error
	SetTheme(theme string) error
}
