package database

// StoredSettings is the key/value settings snapshot. The sync core reads
// the LLM fields; everything else belongs to the surface layer.
type StoredSettings struct {
	FeedServerURL string
	LLMEndpoint   string
	LLMAPIKey     string
	LLMModel      string
	LLMModels     []string
	Theme         string
}

// Settings keys. gist_url is the pre-rename key for the feed server URL
// and is still honored on read.
const (
	settingFeedServerURL = "feed_server_url"
	settingGistURLLegacy = "gist_url"
	settingLLMEndpoint   = "llm_endpoint"
	settingLLMAPIKey     = "llm_api_key"
	settingLLMModel      = "llm_model"
	settingLLMModels     = "llm_models"
	settingTheme         = "theme"
)
