// Package timeline composes feed syncing and summarization behind the
// single entry point the surface layer consumes.
package timeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/scbizu/umbreon/app/database"
	"github.com/scbizu/umbreon/app/feed"
	"github.com/scbizu/umbreon/app/summarizer"
)

// stackLangTagPrefix marks items written after the tagging feature
// shipped. A non-empty cache where no item carries such a tag predates
// tagging and warrants one automatic re-sync.
const stackLangTagPrefix = "StackLang:"

type Service struct {
	syncer       SyncerInterface
	scheduler    SummarizerInterface
	itemRepo     database.ItemRepository
	settingsRepo database.SettingsRepository
	listModels   ModelListerFactory

	defaultFeedURL string

	mu            sync.Mutex
	items         []feed.Item
	status        string
	busy          bool
	feedServerURL string
}

func NewService(syncer SyncerInterface, scheduler SummarizerInterface,
	itemRepo database.ItemRepository, settingsRepo database.SettingsRepository,
	listModels ModelListerFactory, defaultFeedURL string) *Service {

	return &Service{
		syncer:         syncer,
		scheduler:      scheduler,
		itemRepo:       itemRepo,
		settingsRepo:   settingsRepo,
		listModels:     listModels,
		defaultFeedURL: defaultFeedURL,
	}
}

// Bootstrap holds the state loaded at startup.
type Bootstrap struct {
	Items         []feed.Item
	FeedServerURL string
	StaleCache    bool
}

// Bootstrap loads the cached snapshot and resolves the initial feed
// server URL from settings, falling back to the configured default.
func (s *Service) Bootstrap() Bootstrap {
	settings, err := s.settingsRepo.LoadSettings()
	if err != nil {
		slog.Warn("Failed to load stored settings", "error", err)
		settings = &database.StoredSettings{}
	}

	items, err := s.itemRepo.LoadAll()
	if err != nil {
		slog.Warn("Failed to load cached feed items", "error", err)
		items = nil
	}

	url := cmp.Or(settings.FeedServerURL, s.defaultFeedURL)
	stale := len(items) > 0 && !hasStackLangTag(items)

	s.mu.Lock()
	s.items = items
	s.feedServerURL = url
	s.mu.Unlock()

	return Bootstrap{
		Items:         items,
		FeedServerURL: url,
		StaleCache:    stale,
	}
}

// Sync runs one full sync pass: fetch + normalize, summarize, persist.
// All failure paths converge here; the busy flag is cleared on every
// exit, including cache-write failure, which only downgrades the final
// status message.
func (s *Service) Sync(ctx context.Context, url string) {
	if url == "" {
		s.setStatus("Please enter a Feed Server URL.")
		return
	}

	s.setBusy(true)
	defer s.setBusy(false)
	s.setStatus("Syncing feeds...")

	items, err := s.syncer.Run(ctx, url)
	if err != nil {
		s.setStatus(err.Error())
		return
	}

	settings, err := s.settingsRepo.LoadSettings()
	if err != nil {
		slog.Warn("Failed to load LLM settings, skipping summarization", "error", err)
		settings = &database.StoredSettings{}
	}

	items = s.scheduler.Run(ctx, items, summarizer.Credentials{
		Endpoint: settings.LLMEndpoint,
		APIKey:   settings.LLMAPIKey,
		Model:    settings.LLMModel,
	}, func(done, total int) {
		s.setStatus(fmt.Sprintf("Generating summary %d/%d...", done, total))
	})

	status := "Feeds updated."
	if err := s.itemRepo.ReplaceAll(items); err != nil {
		slog.Error("Failed to persist feed items", "error", err)
		status = fmt.Sprintf("Feeds updated, but cache failed: %v", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.setStatus(status)
}

// RefreshModels queries the summarization endpoint for its model list
// and persists it for the surface layer's model picker.
func (s *Service) RefreshModels(ctx context.Context) ([]string, error) {
	settings, err := s.settingsRepo.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	lister, err := s.listModels(settings.LLMEndpoint, settings.LLMAPIKey)
	if err != nil {
		return nil, err
	}

	models, err := lister.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.settingsRepo.SetLLMModels(models); err != nil {
		slog.Warn("Failed to persist model list", "error", err)
	}

	return models, nil
}

// Items returns the current snapshot.
func (s *Service) Items() []feed.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *Service) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Service) FeedServerURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedServerURL
}

func (s *Service) SetFeedServerURL(url string) {
	s.mu.Lock()
	s.feedServerURL = url
	s.mu.Unlock()
}

func (s *Service) setStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Service) setBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

func hasStackLangTag(items []feed.Item) bool {
	for _, item := range items {
		for _, tag := range item.Tags {
			trimmed := strings.TrimLeftFunc(tag, unicode.IsSpace)
			if strings.HasPrefix(trimmed, stackLangTagPrefix) {
				return true
			}
		}
	}
	return false
}
